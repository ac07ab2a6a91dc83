package repository

import (
	"fmt"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 建表
	if err := db.AutoMigrate(
		&model.PreferenceRow{},
		&model.Interaction{},
		&model.SearchLog{},
		&model.TrendingKeyword{},
	); err != nil {
		return nil, fmt.Errorf("建表失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB          *gorm.DB
	Preference  *PreferenceRepository
	Interaction *InteractionRepository
	SearchLog   *SearchLogRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:          db,
		Preference:  NewPreferenceRepository(db),
		Interaction: NewInteractionRepository(db),
		SearchLog:   NewSearchLogRepository(db),
	}
}
