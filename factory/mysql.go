package factory

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQL 返回创建 *sql.DB 的函数，每个句柄最多一个连接。创建时不连接数据库。
func MySQL(dsn string) func() (*sql.DB, error) {
	return func() (*sql.DB, error) {
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return nil, fmt.Errorf("初始化数据库连接失败: %w", err)
		}
		sqlDB, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("初始化数据库连接失败: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		return sqlDB, nil
	}
}

// Gorm 返回创建 *gorm.DB 的函数，不做版本查询和 ping
func Gorm(dsn string) func() (*gorm.DB, error) {
	return func() (*gorm.DB, error) {
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return nil, fmt.Errorf("初始化数据库连接失败: %w", err)
		}
		db, err := gorm.Open(gormmysql.New(gormmysql.Config{
			DSN:                       dsn,
			SkipInitializeWithVersion: true,
		}), &gorm.Config{
			DisableAutomaticPing: true,
		})
		if err != nil {
			return nil, fmt.Errorf("初始化数据库连接失败: %w", err)
		}
		return db, nil
	}
}
