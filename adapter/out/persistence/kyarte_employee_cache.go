package persistence

import (
	"context"
	"fmt"
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/cache"
)

const (
	employeeListKey  = "employees:all"
	employeeKeyFmt   = "employees:%d"
	employeeCacheTTL = 5 * time.Minute
)

// CachedEmployeeAdapter wraps EmployeeAdapter with Redis caching. The
// full employee list is read on every attendee scan during note
// analysis, so it is the one query worth caching. Writes invalidate.
type CachedEmployeeAdapter struct {
	delegate *EmployeeAdapter
	cache    *cache.RedisCache
	ttl      time.Duration
}

func NewCachedEmployeeAdapter(delegate *EmployeeAdapter, redisCache *cache.RedisCache, ttl time.Duration) *CachedEmployeeAdapter {
	if ttl <= 0 {
		ttl = employeeCacheTTL
	}
	return &CachedEmployeeAdapter{delegate: delegate, cache: redisCache, ttl: ttl}
}

// GetByID gets an employee with caching.
func (a *CachedEmployeeAdapter) GetByID(id int64) (*domain.Employee, error) {
	ctx := context.Background()
	key := fmt.Sprintf(employeeKeyFmt, id)

	var cached domain.Employee
	if found, err := a.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	employee, err := a.delegate.GetByID(id)
	if err != nil || employee == nil {
		return employee, err
	}
	_ = a.cache.SetJSON(ctx, key, employee, a.ttl)
	return employee, nil
}

// List gets all employees with caching.
func (a *CachedEmployeeAdapter) List() ([]*domain.Employee, error) {
	ctx := context.Background()

	var cached []*domain.Employee
	if found, err := a.cache.GetJSON(ctx, employeeListKey, &cached); err == nil && found {
		return cached, nil
	}

	employees, err := a.delegate.List()
	if err != nil {
		return nil, err
	}
	_ = a.cache.SetJSON(ctx, employeeListKey, employees, a.ttl)
	return employees, nil
}

// Pass-through queries; these are rare enough to skip caching.

func (a *CachedEmployeeAdapter) ListByFolder(folderID int64) ([]*domain.Employee, error) {
	return a.delegate.ListByFolder(folderID)
}

func (a *CachedEmployeeAdapter) ListWithoutFolder() ([]*domain.Employee, error) {
	return a.delegate.ListWithoutFolder()
}

func (a *CachedEmployeeAdapter) SearchByName(name string) ([]*domain.Employee, error) {
	return a.delegate.SearchByName(name)
}

func (a *CachedEmployeeAdapter) SearchByNameWithin(text string) ([]*domain.Employee, error) {
	return a.delegate.SearchByNameWithin(text)
}

func (a *CachedEmployeeAdapter) CountByFolder(folderID int64) (int, error) {
	return a.delegate.CountByFolder(folderID)
}

func (a *CachedEmployeeAdapter) Count() (int, error) {
	return a.delegate.Count()
}

// Writes invalidate the affected keys.

func (a *CachedEmployeeAdapter) Create(employee *domain.Employee) error {
	if err := a.delegate.Create(employee); err != nil {
		return err
	}
	a.invalidate(employee.ID)
	return nil
}

func (a *CachedEmployeeAdapter) Update(employee *domain.Employee) error {
	if err := a.delegate.Update(employee); err != nil {
		return err
	}
	a.invalidate(employee.ID)
	return nil
}

func (a *CachedEmployeeAdapter) Delete(id int64) error {
	if err := a.delegate.Delete(id); err != nil {
		return err
	}
	a.invalidate(id)
	return nil
}

func (a *CachedEmployeeAdapter) invalidate(id int64) {
	_ = a.cache.Delete(context.Background(), employeeListKey, fmt.Sprintf(employeeKeyFmt, id))
}
