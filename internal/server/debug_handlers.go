package server

import (
	"helios/internal/database"
	"helios/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTables handles GET /tables, listing the table names the debug surface
// may expose.
func (s *Server) GetTables(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tables": database.TableNames(),
	})
}

// GetTableData handles GET /data/:tableName. Only allow-listed tables can be
// dumped; the name never reaches SQL unchecked.
func (s *Server) GetTableData(c *fiber.Ctx) error {
	tableName := c.Params("tableName")

	allowed := false
	for _, t := range database.TableNames() {
		if t == tableName {
			allowed = true
			break
		}
	}
	if !allowed {
		return respondError(c, models.NewNotFoundError("Table", tableName))
	}

	var rows []map[string]interface{}
	if err := s.db.WithContext(c.UserContext()).Table(tableName).Find(&rows).Error; err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	// Never leak password hashes through the debug surface.
	if tableName == "users" {
		for _, row := range rows {
			delete(row, "password")
		}
	}

	return c.Status(fiber.StatusOK).JSON(rows)
}
