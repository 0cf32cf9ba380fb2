// 从 JSON 文件导入中心名录
//
// 文件格式与 /api/centros/import 上传的相同：{"Listado de centros": [...]}。
// 适合首次部署时导入全国名录，不经过 HTTP 上传大小限制。
//
// 用法: go run scripts/import_centros.go -file listado.json [-config configs]

package main

import (
	"context"
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/repository"
	"escolavision_backend/internal/service"
	"escolavision_backend/pkg/database"
	"escolavision_backend/pkg/logger"
	"flag"
	"log"
	"os"
	"path/filepath"
)

func main() {
	file := flag.String("file", "", "中心名录 JSON 文件")
	configDir := flag.String("config", "configs", "配置文件目录")
	archive := flag.Bool("archive", false, "同时将源文件归档到对象存储")
	flag.Parse()

	if *file == "" {
		log.Fatal("必须指定 -file")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var storage *service.StorageService
	if *archive {
		storage = service.NewStorageService(cfg)
	}
	importer := service.NewCentroImportService(repository.NewCentroRepository(db), storage, cfg.Import.BatchSize)

	log.Println("开始导入中心名录...")
	result, err := importFile(context.Background(), importer, *file, *archive)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}

	log.Printf("完成！共 %d 条，导入 %d 条，失败批次 %d", result.Total, result.Importados, result.LotesFallidos)
	if result.Archivo != "" {
		log.Printf("源文件已归档: %s", result.Archivo)
	}
}

// importFile archive 为真时整份读入内存以便归档，否则流式解析
func importFile(ctx context.Context, importer *service.CentroImportService, path string, archive bool) (*service.ImportResult, error) {
	if archive {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return importer.ImportUpload(ctx, filepath.Base(path), data)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return importer.ImportReader(ctx, f)
}
