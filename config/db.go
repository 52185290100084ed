package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// ConnectDB opens the database connection with Gorm.
// The driver is selected with DB_DRIVER (mysql, postgres or mssql).
func ConnectDB() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			DBHost, DBUser, DBPassword, DBName, DBPort)
		dialector = postgres.Open(dsn)
	case "mssql":
		dsn := "sqlserver://" + DBUser + ":" + DBPassword + "@" + DBHost + ":" + DBPort + "?database=" + DBName
		dialector = sqlserver.Open(dsn)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			DBUser, DBPassword, DBHost, DBPort, DBName)
		dialector = mysql.Open(dsn)
	}

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey so the repositories can map them.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return nil, err
	}

	return db, nil
}
