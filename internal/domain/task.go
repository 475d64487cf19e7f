package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Task is a unit of outsourced work owned by exactly one batch.
type Task struct {
	ID           int             `json:"id"            yaml:"id"`
	Title        string          `json:"title"         yaml:"title"`
	ExecutorName string          `json:"executor_name" yaml:"executor_name"`
	Status       Status          `json:"status"        yaml:"status"`
	Amount       decimal.Decimal `json:"amount"        yaml:"amount"`
	Deadline     Date            `json:"deadline"      yaml:"deadline"`
}

// Validate checks the status and amount of a task.
func (t Task) Validate() error {
	if _, err := StatusLabel(t.Status); err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("task %d: %w: %s", t.ID, ErrNegativeAmount, t.Amount)
	}
	return nil
}

// TotalAmount sums the amounts of the given tasks.
func TotalAmount(tasks []Task) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tasks {
		total = total.Add(t.Amount)
	}
	return total
}
