package bootstrap

import (
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/logger"
)

// SeedDemoData inserts a small set of sample employees on first boot.
// It is a no-op when any employee already exists.
func SeedDemoData(deps *Dependencies) error {
	count, err := deps.EmployeeRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	strPtr := func(s string) *string { return &s }
	datePtr := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return &t
	}

	employees := []*domain.Employee{
		{
			LastName:   "佐藤",
			FirstName:  "一",
			Department: strPtr("営業部"),
			Position:   strPtr("主任"),
			BirthDate:  datePtr(1990, time.April, 12),
			HireDate:   datePtr(2015, time.April, 1),
		},
		{
			LastName:   "田中",
			FirstName:  "次郎",
			Department: strPtr("開発部"),
			Position:   strPtr("エンジニア"),
			BirthDate:  datePtr(1988, time.September, 3),
			HireDate:   datePtr(2012, time.October, 1),
		},
		{
			LastName:   "鈴木",
			FirstName:  "三郎",
			Department: strPtr("人事部"),
			BirthDate:  datePtr(1995, time.January, 25),
			HireDate:   datePtr(2019, time.April, 1),
		},
		{
			LastName:  "スミス",
			FirstName: "ポール",
			Position:  strPtr("マネージャー"),
			HireDate:  datePtr(2021, time.July, 15),
		},
	}

	for _, e := range employees {
		if err := deps.EmployeeRepo.Create(e); err != nil {
			return err
		}
	}

	logger.Info("Seeded %d demo employees", len(employees))
	return nil
}
