package service

import (
	"context"
	"escolavision_backend/internal/model"
	"math"
	"sort"
)

// topTestsLimit 排行榜展示的测试数量
const topTestsLimit = 5

type DashboardService struct {
	Tests    TestRepository
	Intentos IntentoRepository
}

func NewDashboardService(repos Repositories) *DashboardService {
	return &DashboardService{
		Tests:    repos.Tests,
		Intentos: repos.Intentos,
	}
}

// Dashboard 管理端首页的统计数据
type Dashboard struct {
	TotalIntentos   int              `json:"totalIntentos"`
	PuntuacionMedia float64          `json:"puntuacionMedia"`
	IntentosPorTest map[uint]int     `json:"intentosPorTest"`
	MediaPorTest    map[uint]float64 `json:"mediaPorTest"`
	TestsActivos    int64            `json:"testsActivos"`
	TopTests        []TestRanking    `json:"topTests"`
}

type TestRanking struct {
	IDTest     uint    `json:"idtest"`
	NombreTest string  `json:"nombretest"`
	Intentos   int     `json:"intentos"`
	Media      float64 `json:"media"`
}

// GetCentroDashboard 统计某个中心学生的作答；idCentro 为 nil 时统计全部
func (s *DashboardService) GetCentroDashboard(ctx context.Context, idCentro *uint) (*Dashboard, error) {
	var (
		intentos []model.Intento
		err      error
	)
	if idCentro != nil {
		intentos, err = s.Intentos.FindByCentro(ctx, *idCentro)
	} else {
		intentos, err = s.Intentos.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	activos, err := s.Tests.CountVisible(ctx)
	if err != nil {
		return nil, err
	}

	tests, err := s.Tests.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	nombres := make(map[uint]string, len(tests))
	for _, t := range tests {
		nombres[t.ID] = t.NombreTest
	}

	return buildDashboard(intentos, nombres, activos), nil
}

func buildDashboard(intentos []model.Intento, nombres map[uint]string, activos int64) *Dashboard {
	d := &Dashboard{
		TotalIntentos:   len(intentos),
		IntentosPorTest: make(map[uint]int),
		MediaPorTest:    make(map[uint]float64),
		TestsActivos:    activos,
		TopTests:        []TestRanking{},
	}

	var total float64
	var n int
	sums := make(map[uint]float64)
	counts := make(map[uint]int)
	for i := range intentos {
		it := &intentos[i]
		d.IntentosPorTest[it.IDTest]++
		for _, score := range it.Scores() {
			total += score
			n++
			sums[it.IDTest] += score
			counts[it.IDTest]++
		}
	}
	if n > 0 {
		d.PuntuacionMedia = round1(total / float64(n))
	}
	for id := range d.IntentosPorTest {
		if counts[id] > 0 {
			d.MediaPorTest[id] = round1(sums[id] / float64(counts[id]))
		} else {
			d.MediaPorTest[id] = 0
		}
		d.TopTests = append(d.TopTests, TestRanking{
			IDTest:     id,
			NombreTest: nombres[id],
			Intentos:   d.IntentosPorTest[id],
			Media:      d.MediaPorTest[id],
		})
	}

	sort.Slice(d.TopTests, func(i, j int) bool {
		if d.TopTests[i].Intentos != d.TopTests[j].Intentos {
			return d.TopTests[i].Intentos > d.TopTests[j].Intentos
		}
		return d.TopTests[i].IDTest < d.TopTests[j].IDTest
	})
	if len(d.TopTests) > topTestsLimit {
		d.TopTests = d.TopTests[:topTestsLimit]
	}
	return d
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
