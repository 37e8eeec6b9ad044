package productcontroller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Spreadsheet layout shared by import and export.
var excelHeaders = []string{
	"ID", "Name", "Slug", "Description", "Price", "Quantity",
	"CategoryID", "Shipping", "CreatedAt", "UpdatedAt",
}

// ImportProductsFromExcel upserts products from the first sheet of an
// uploaded workbook. Rows with an existing ID update that product; other
// rows are inserted. Bad rows are counted as skipped.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]
			if row == nil || len(row.Cells) < 8 {
				skippedCount++
				continue
			}

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			name := get(1)
			price, errPrice := strconv.ParseFloat(get(4), 64)
			quantity, errQty := strconv.ParseFloat(get(5), 64)
			categoryID, errCat := strconv.ParseUint(get(6), 10, 64)
			if name == "" || errPrice != nil || errQty != nil || errCat != nil || price < 0 || quantity < 0 {
				skippedCount++
				continue
			}
			shipping, _ := strconv.ParseBool(get(7))

			var category models.Category
			if err := db.Select("id").First(&category, categoryID).Error; err != nil {
				skippedCount++
				continue
			}

			fields := models.Product{
				Name:        name,
				Slug:        slug.Make(name),
				Description: get(3),
				Price:       price,
				Quantity:    int(quantity),
				CategoryID:  category.ID,
				Shipping:    shipping,
			}

			if id, err := strconv.ParseUint(get(0), 10, 64); err == nil {
				var existing models.Product
				if err := db.Select("id").First(&existing, id).Error; err == nil {
					// Select keeps zero values like Shipping=false and Quantity=0
					if err := db.Model(&existing).
						Select("name", "slug", "description", "price", "quantity", "category_id", "shipping").
						Updates(fields).Error; err != nil {
						skippedCount++
						continue
					}
					updatedCount++
					continue
				}
			}

			if err := db.Create(&fields).Error; err != nil {
				log.Printf("❌ Failed to import row %d: %v", i+1, err)
				skippedCount++
				continue
			}
			createdCount++
		}

		log.Printf("✅ Product import: %d created, %d updated, %d skipped", createdCount, updatedCount, skippedCount)
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
