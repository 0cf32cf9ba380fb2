package service

import (
	"bytes"
	"context"
	"encoding/json"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"escolavision_backend/pkg/logger"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	listadoKey      = "Listado de centros"
	defaultLoteSize = 1000
	// maxTelefono telefono / telefono_secundario 的列宽
	maxTelefono = 20
)

// ImportResult 批量导入的结果
type ImportResult struct {
	Total         int    `json:"total"`
	Importados    int    `json:"importados"`
	LotesFallidos int    `json:"lotesFallidos"`
	Archivo       string `json:"archivo,omitempty"`
}

type CentroImportService struct {
	Centros   CentroRepository
	Storage   *StorageService
	BatchSize int
}

func NewCentroImportService(centros CentroRepository, storage *StorageService, batchSize int) *CentroImportService {
	if batchSize <= 0 {
		batchSize = defaultLoteSize
	}
	return &CentroImportService{Centros: centros, Storage: storage, BatchSize: batchSize}
}

// ParseListado 读取教育部公开的中心名录 {"Listado de centros": [...]}
func ParseListado(r io.Reader) ([]model.Centro, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: JSON no válido: %v", util.ErrInvalidInput, err)
	}
	raw, ok := doc[listadoKey]
	if !ok {
		return nil, fmt.Errorf("%w: no se encontró la clave '%s'", util.ErrInvalidInput, listadoKey)
	}

	var rows []map[string]interface{}
	rdec := json.NewDecoder(bytes.NewReader(raw))
	rdec.UseNumber()
	if err := rdec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %s no es una lista: %v", util.ErrInvalidInput, listadoKey, err)
	}

	centros := make([]model.Centro, 0, len(rows))
	for _, row := range rows {
		field := func(key string) string {
			return strings.TrimSpace(cast.ToString(row[key]))
		}
		telefono, secundario := SplitTelefono(field("TELÉFONO"))
		centros = append(centros, model.Centro{
			ComunidadAutonoma:      field("COMUNIDAD AUTÓNOMA"),
			Provincia:              field("PROVINCIA"),
			Localidad:              field("LOCALIDAD"),
			DenominacionGenerica:   field("DENOMINACIÓN GENÉRICA"),
			DenominacionEspecifica: field("DENOMINACIÓN ESPECÍFICA"),
			Codigo:                 field("CÓDIGO"),
			Naturaleza:             field("NATURALEZA"),
			Domicilio:              field("DOMICILIO"),
			CodigoPostal:           field("CÓD POSTAL"),
			Telefono:               telefono,
			TelefonoSecundario:     secundario,
		})
	}
	return centros, nil
}

// SplitTelefono "a/b" 拆成主、副电话，并截断到列宽
func SplitTelefono(telefono string) (string, string) {
	principal, secundario, _ := strings.Cut(telefono, "/")
	return truncate(strings.TrimSpace(principal), maxTelefono), truncate(strings.TrimSpace(secundario), maxTelefono)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Import 分批写入，每批一个事务；失败的批次回滚并记录，后续批次继续
func (s *CentroImportService) Import(ctx context.Context, centros []model.Centro) *ImportResult {
	result := &ImportResult{Total: len(centros)}
	for start := 0; start < len(centros); start += s.BatchSize {
		end := start + s.BatchSize
		if end > len(centros) {
			end = len(centros)
		}
		lote := centros[start:end]
		if err := s.Centros.CreateBatch(ctx, lote); err != nil {
			result.LotesFallidos++
			logger.Log.Error("Error al insertar el lote de centros",
				zap.Int("desde", start),
				zap.Int("hasta", end),
				zap.Error(err))
			continue
		}
		result.Importados += len(lote)
	}

	logger.Log.Info("Importación de centros terminada",
		zap.Int("total", result.Total),
		zap.Int("importados", result.Importados),
		zap.Int("lotesFallidos", result.LotesFallidos))
	return result
}

// ImportReader 解析并导入
func (s *CentroImportService) ImportReader(ctx context.Context, r io.Reader) (*ImportResult, error) {
	centros, err := ParseListado(r)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, centros), nil
}

// ImportUpload 上传的文件先归档再导入；归档失败不影响导入
func (s *CentroImportService) ImportUpload(ctx context.Context, filename string, data []byte) (*ImportResult, error) {
	centros, err := ParseListado(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var archivo string
	if s.Storage != nil {
		archivo, err = s.Storage.ArchiveImport(ctx, filename, bytes.NewReader(data), int64(len(data)))
		if err != nil {
			logger.Log.Warn("Failed to archive import file", zap.String("filename", filename), zap.Error(err))
			archivo = ""
		}
	}

	result := s.Import(ctx, centros)
	result.Archivo = archivo
	return result, nil
}
