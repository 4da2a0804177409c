package http

import (
	"kyarte_server/core/domain"
	"kyarte_server/core/service/employee"
	"kyarte_server/core/service/folder"
	"kyarte_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FolderHandler handles folder-related HTTP requests.
type FolderHandler struct {
	folders   *folder.Service
	employees *employee.Service
}

func NewFolderHandler(folders *folder.Service, employees *employee.Service) *FolderHandler {
	return &FolderHandler{folders: folders, employees: employees}
}

// RegisterRoutes registers folder routes.
func (h *FolderHandler) RegisterRoutes(app fiber.Router) {
	folders := app.Group("/folders")
	folders.Get("/", h.ListFolders)
	folders.Post("/", h.CreateFolder)
	folders.Get("/:id", h.GetFolder)
	folders.Put("/:id", h.UpdateFolder)
	folders.Delete("/:id", h.DeleteFolder)
	folders.Get("/:id/employees", h.ListFolderEmployees)
}

// ListFolders returns all folders.
func (h *FolderHandler) ListFolders(c *fiber.Ctx) error {
	folders, err := h.folders.List()
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, folders, &response.Meta{Total: len(folders)})
}

// GetFolder returns a single folder.
func (h *FolderHandler) GetFolder(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	f, err := h.folders.Get(id)
	if err != nil {
		return err
	}
	return response.OK(c, f)
}

type folderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CreateFolder creates a new folder.
func (h *FolderHandler) CreateFolder(c *fiber.Ctx) error {
	var req folderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	f := &domain.Folder{Name: req.Name, Description: req.Description}
	if err := h.folders.Create(f); err != nil {
		return err
	}
	return response.Created(c, f)
}

// UpdateFolder updates a folder.
func (h *FolderHandler) UpdateFolder(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req folderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	f, err := h.folders.Get(id)
	if err != nil {
		return err
	}
	f.Name = req.Name
	f.Description = req.Description
	if err := h.folders.Update(f); err != nil {
		return err
	}
	return response.OK(c, f)
}

// DeleteFolder deletes an empty folder.
func (h *FolderHandler) DeleteFolder(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.folders.Delete(id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// ListFolderEmployees returns the employees assigned to a folder.
func (h *FolderHandler) ListFolderEmployees(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.folders.Get(id); err != nil {
		return err
	}
	employees, err := h.employees.ListByFolder(id)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, employees, &response.Meta{Total: len(employees)})
}
