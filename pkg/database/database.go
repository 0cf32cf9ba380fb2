package database

import (
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/model"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 按外键依赖顺序排列，AutoMigrate 时父表先建
var Models = []interface{}{
	&model.Centro{},
	&model.Test{},
	&model.Area{},
	&model.Usuario{},
	&model.Pregunta{},
	&model.PxA{},
	&model.Intento{},
}

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

// Open 使用给定方言打开连接；测试中传入基于 sqlmock 的方言
func Open(dialector gorm.Dialector, mode string) (*gorm.DB, error) {
	level := logger.Warn
	if mode == "debug" {
		level = logger.Info
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
		// 将 MySQL 1062/1451/1452 翻译为 gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
		TranslateError: true,
	})
}

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	db, err := Open(mysql.Open(DSN(cfg)), mode)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	log.Println("Database migration completed")
	return nil
}
