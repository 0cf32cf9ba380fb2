package service

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"escolavision_backend/pkg/logger"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Submission 移动端提交的一次作答，respuestas 的键是 idpregunta
type Submission struct {
	IDUsuario  uint                   `json:"idusuario"`
	Respuestas map[string]interface{} `json:"respuestas"`
}

type SubmitResult struct {
	ID         uint   `json:"id"`
	Resultados string `json:"resultados"`
}

type ScoreService struct {
	Tests     TestRepository
	Preguntas PreguntaRepository
	PxA       PxARepository
	Intentos  IntentoRepository
}

func NewScoreService(repos Repositories) *ScoreService {
	return &ScoreService{
		Tests:     repos.Tests,
		Preguntas: repos.Preguntas,
		PxA:       repos.PxA,
		Intentos:  repos.Intentos,
	}
}

// AggregateScores 计算领域 1..NumAreas 的平均分。
// 没有作答的问题按滑块初始值计分；一个问题映射到多个领域时分别计入；没有数据的领域为 0。
func AggregateScores(preguntas []uint, respuestas map[uint]float64, pxa []model.PxA) []float64 {
	byPregunta := make(map[uint][]uint, len(pxa))
	for _, m := range pxa {
		byPregunta[m.IDPregunta] = append(byPregunta[m.IDPregunta], m.IDArea)
	}

	sum := make([]float64, util.NumAreas)
	count := make([]int, util.NumAreas)
	for _, id := range preguntas {
		value, ok := respuestas[id]
		if !ok {
			value = util.SliderDefault
		}
		for _, area := range byPregunta[id] {
			if area < 1 || area > util.NumAreas {
				continue
			}
			sum[area-1] += value
			count[area-1]++
		}
	}

	scores := make([]float64, util.NumAreas)
	for i := range scores {
		if count[i] > 0 {
			scores[i] = sum[i] / float64(count[i])
		}
	}
	return scores
}

// FormatResultados 以最短的十进制形式输出，例如 "5;7.5;0;0;0"
func FormatResultados(scores []float64) string {
	parts := make([]string, len(scores))
	for i, v := range scores {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, model.ResultadosSeparator)
}

// parseRespuestas 校验键为问题 ID、值在滑块范围内
func parseRespuestas(raw map[string]interface{}) (map[uint]float64, error) {
	out := make(map[uint]float64, len(raw))
	for key, v := range raw {
		id, ok := util.ParseID(key)
		if !ok {
			return nil, fmt.Errorf("%w: idpregunta %q", util.ErrInvalidInput, key)
		}
		value, err := cast.ToFloat64E(v)
		if err != nil || value < util.SliderMin || value > util.SliderMax {
			return nil, fmt.Errorf("%w: respuesta %v fuera de rango", util.ErrInvalidInput, v)
		}
		out[id] = value
	}
	return out, nil
}

// Submit 在服务器端计算结果；idusuario 为 0（访客）时只计算不保存
func (s *ScoreService) Submit(ctx context.Context, idTest uint, sub Submission) (*SubmitResult, error) {
	respuestas, err := parseRespuestas(sub.Respuestas)
	if err != nil {
		return nil, err
	}

	if _, err := s.Tests.FindByID(ctx, idTest); err != nil {
		return nil, err
	}

	preguntas, err := s.Preguntas.FindByTest(ctx, idTest)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(preguntas))
	for i, p := range preguntas {
		ids[i] = p.ID
	}

	var mappings []model.PxA
	if len(ids) > 0 {
		if mappings, err = s.PxA.FindByPreguntas(ctx, ids); err != nil {
			return nil, err
		}
	}

	result := &SubmitResult{Resultados: FormatResultados(AggregateScores(ids, respuestas, mappings))}
	if sub.IDUsuario == 0 {
		return result, nil
	}

	ts := now()
	intento := &model.Intento{
		IDTest:     idTest,
		IDUsuario:  sub.IDUsuario,
		Fecha:      ts.Format(util.DateFormat),
		Hora:       ts.Format(util.TimeFormat),
		Resultados: result.Resultados,
	}
	if err := s.Intentos.Create(ctx, intento); err != nil {
		return nil, err
	}
	result.ID = intento.ID

	logger.Log.Info("Intento registrado",
		zap.Uint("id", intento.ID),
		zap.Uint("idtest", idTest),
		zap.Uint("idusuario", sub.IDUsuario),
		zap.String("resultados", result.Resultados))
	return result, nil
}
