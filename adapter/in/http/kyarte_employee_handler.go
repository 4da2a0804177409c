package http

import (
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/core/service/employee"
	"kyarte_server/pkg/apperr"
	"kyarte_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee-related HTTP requests.
type EmployeeHandler struct {
	employees *employee.Service
}

func NewEmployeeHandler(employees *employee.Service) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// RegisterRoutes registers employee routes.
func (h *EmployeeHandler) RegisterRoutes(app fiber.Router) {
	employees := app.Group("/employees")
	employees.Get("/", h.ListEmployees)
	employees.Post("/", h.CreateEmployee)
	employees.Get("/search", h.SearchEmployees)
	employees.Get("/unassigned", h.ListUnassigned)
	employees.Get("/:id", h.GetEmployee)
	employees.Put("/:id", h.UpdateEmployee)
	employees.Delete("/:id", h.DeleteEmployee)
	employees.Put("/:id/folder", h.AssignFolder)
}

// ListEmployees returns all employees.
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.employees.List()
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, employees, &response.Meta{Total: len(employees)})
}

// SearchEmployees finds employees by (possibly honorific-suffixed) name.
func (h *EmployeeHandler) SearchEmployees(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return apperr.InvalidInput("name", "query parameter is required")
	}
	employees, err := h.employees.Search(name)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, employees, &response.Meta{Total: len(employees)})
}

// ListUnassigned returns employees without a folder.
func (h *EmployeeHandler) ListUnassigned(c *fiber.Ctx) error {
	employees, err := h.employees.ListWithoutFolder()
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, employees, &response.Meta{Total: len(employees)})
}

// GetEmployee returns a single employee.
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	emp, err := h.employees.Get(id)
	if err != nil {
		return err
	}
	return response.OK(c, emp)
}

type employeeRequest struct {
	LastName   string  `json:"last_name"`
	FirstName  string  `json:"first_name"`
	BirthDate  *string `json:"birth_date,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Notes      string  `json:"notes"`
	FolderID   *int64  `json:"folder_id,omitempty"`
}

func (r *employeeRequest) apply(emp *domain.Employee) error {
	emp.LastName = r.LastName
	emp.FirstName = r.FirstName
	emp.Department = r.Department
	emp.Position = r.Position
	emp.Email = r.Email
	emp.Phone = r.Phone
	emp.Notes = r.Notes
	emp.FolderID = r.FolderID

	var err error
	if emp.BirthDate, err = parseDatePtr(r.BirthDate, "birth_date"); err != nil {
		return err
	}
	if emp.HireDate, err = parseDatePtr(r.HireDate, "hire_date"); err != nil {
		return err
	}
	return nil
}

func parseDatePtr(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", *raw, time.Local)
	if err != nil {
		return nil, apperr.InvalidInput(field, "must be yyyy-mm-dd")
	}
	return &parsed, nil
}

// CreateEmployee creates a new employee.
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	emp := &domain.Employee{}
	if err := req.apply(emp); err != nil {
		return err
	}
	if err := h.employees.Create(emp); err != nil {
		return err
	}
	return response.Created(c, emp)
}

// UpdateEmployee updates an employee.
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	emp, err := h.employees.Get(id)
	if err != nil {
		return err
	}
	if err := req.apply(emp); err != nil {
		return err
	}
	if err := h.employees.Update(emp); err != nil {
		return err
	}
	return response.OK(c, emp)
}

// DeleteEmployee deletes an employee.
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.employees.Delete(id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// AssignFolder moves an employee into or out of a folder.
func (h *EmployeeHandler) AssignFolder(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		FolderID *int64 `json:"folder_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.employees.AssignFolder(id, req.FolderID); err != nil {
		return err
	}
	emp, err := h.employees.Get(id)
	if err != nil {
		return err
	}
	return response.OK(c, emp)
}
