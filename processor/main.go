package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"shipments-app/config"
	"shipments-app/models"

	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Processor watches the import folder for product spreadsheets dropped by
// the back office, loads them into the catalog and moves them to the
// processed folder. Each file is handled exactly once.

type importResult struct {
	Filename string
	Created  int
	Skipped  int
	Failed   []string
}

func checkUnprocessedFiles(db *gorm.DB) {
	files, err := filepath.Glob(filepath.Join(config.ImportFolder, "*.xlsx"))
	if err != nil {
		log.Fatal("Failed to read import folder:", err)
	}

	for _, file := range files {
		processFile(db, file)
	}
}

func processFile(db *gorm.DB, filename string) {
	base := filepath.Base(filename)

	var existing models.ImportFileLog
	if err := db.Where("filename = ?", base).First(&existing).Error; err == nil {
		log.Println("File already processed, skip:", base)
		return
	}

	info, err := os.Stat(filename)
	if err != nil {
		log.Println("Failed to stat file:", err)
		return
	}

	fmt.Println("Processing file:", base)

	result, err := processProductSheet(db, filename)
	if err != nil {
		log.Println("Failed to process file:", base, err)
		return
	}

	// Move before logging: a logged file is skipped forever, so the log
	// row must only exist once the file is out of the import folder.
	if err := moveToProcessed(filename, config.ProcessedFolder); err != nil {
		log.Println("Failed to move file to processed folder, will retry next run:", err)
		return
	}

	db.Create(&models.ImportFileLog{Filename: base, DateModified: info.ModTime()})

	if err := sendImportSummary(config.NotifyEmails, result); err != nil {
		log.Println("Failed to send summary email:", err)
	}

	fmt.Printf("Done: %s (created %d, skipped %d, failed %d)\n",
		base, result.Created, result.Skipped, len(result.Failed))
}

// processProductSheet expects columns SKU | NAME | CATEGORY | ORIGIN with a
// header row, matching the upload endpoint format.
func processProductSheet(db *gorm.DB, filename string) (*importResult, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	result := &importResult{Filename: filepath.Base(filename)}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		col := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		sku := strings.ToUpper(col(0))
		name := col(1)
		categoryCode := strings.ToUpper(col(2))
		origin := col(3)

		if sku == "" || name == "" {
			result.Failed = append(result.Failed, fmt.Sprintf("row %d: missing SKU or name", i+1))
			continue
		}
		if len(sku) > 20 {
			result.Failed = append(result.Failed, fmt.Sprintf("row %d: SKU %s exceeds 20 characters", i+1, sku))
			continue
		}

		var existing models.Product
		if err := db.Where("sku = ?", sku).First(&existing).Error; err == nil {
			result.Skipped++
			continue
		}

		var category models.Category
		if err := db.Where("code = ?", categoryCode).First(&category).Error; err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("row %d: unknown category %s", i+1, categoryCode))
			continue
		}

		product := models.Product{
			SKU:        sku,
			Name:       name,
			CategoryID: category.ID,
			Origin:     origin,
			IsActive:   true,
		}
		if err := db.Create(&product).Error; err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

func moveToProcessed(filename, processedFolder string) error {
	if _, err := os.Stat(processedFolder); os.IsNotExist(err) {
		if err := os.MkdirAll(processedFolder, os.ModePerm); err != nil {
			return err
		}
	}

	dst := filepath.Join(processedFolder, filepath.Base(filename))
	if err := os.Rename(filename, dst); err != nil {
		// rename fails across devices, fall back to copy and delete
		return copyAndDeleteFile(filename, dst)
	}
	return nil
}

func copyAndDeleteFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destinationFile.Close()

	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		return err
	}

	return os.Remove(src)
}

func sendImportSummary(toEmails []string, result *importResult) error {
	if config.SMTPHost == "" || len(toEmails) == 0 {
		return nil
	}

	subject := "Product import processed: " + result.Filename
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Product import processed</h3>
				<p>File: <strong>%s</strong></p>
				<p>Created: %d, Skipped: %d, Failed: %d</p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, result.Filename, result.Created, result.Skipped, len(result.Failed))

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", toEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}

	log.Println("Summary email sent to:", toEmails)
	return nil
}

func main() {
	config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fmt.Println("Import processor running...")

	checkUnprocessedFiles(db)

	fmt.Println("All files processed")
}
