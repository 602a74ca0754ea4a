package tasklist

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/JamesPrial/tasklist/internal/form"
	"github.com/JamesPrial/tasklist/internal/storage"
)

// FieldError is a validation failure anchored to one input.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Outcome is the result of a submission.
type Outcome struct {
	// Accepted is true when the task was stored.
	Accepted bool

	// Error is the first failed check of a rejected submission.
	Error *FieldError

	// Task is the stored record of an accepted submission.
	Task storage.Task

	// Notice is the success notification of an accepted submission.
	Notice string

	// Values are the form values to show next: the submission when
	// rejected, empty when accepted.
	Values url.Values
}

// ErrorFor returns the error message anchored on field, if any.
func (o Outcome) ErrorFor(field string) string {
	if o.Error != nil && o.Error.Field == field {
		return o.Error.Message
	}
	return ""
}

// Row is one rendered table row. Index is the record's position at render
// time and is only valid until the next mutation.
type Row struct {
	Index int
	Name1 string
	Name2 string
	Date  string
}

// Controller runs the task form of one page.
type Controller struct {
	board *Board
	page  form.Page
	lock  *sync.Mutex
}

// Page returns the page this controller serves.
func (c *Controller) Page() form.Page {
	return c.page
}

// Submit validates values and, if every check passes, appends the task.
//
// Checks run in order: name1 required, name2 required, date required, date
// today or later, duplicate. The first failure ends the submission with a
// rejected Outcome and no state change. The returned error is reserved for
// storage failures.
func (c *Controller) Submit(ctx context.Context, values url.Values) (Outcome, error) {
	fields := c.page.Fields
	name1 := form.Resolve(fields.Name1, values)
	name2 := form.Resolve(fields.Name2, values)
	date := form.Resolve(fields.Date, values)

	reject := func(f form.Field, msg string) (Outcome, error) {
		c.board.debugf("rejected %s submission: %s: %s", c.page.Slug, f.ID, msg)
		return Outcome{
			Error:  &FieldError{Field: f.ID, Message: msg},
			Values: values,
		}, nil
	}

	for _, check := range []struct {
		field form.Field
		value form.Value
	}{
		{fields.Name1, name1},
		{fields.Name2, name2},
		{fields.Date, date},
	} {
		if check.value.Raw == "" {
			return reject(check.field, requiredMessage(check.field))
		}
	}

	if !IsFutureDate(date.Raw, c.board.now()) {
		return reject(fields.Date, MsgDateNotFuture)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	tasks, err := c.load(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if IsDuplicate(tasks, name1.Display, name2.Display, date.Display) {
		return reject(fields.Name1, MsgDuplicate)
	}

	task := storage.Task{Name1: name1.Display, Name2: name2.Display, Date: date.Display}
	tasks = append(tasks, task)
	if err := c.save(ctx, tasks); err != nil {
		return Outcome{}, err
	}

	c.board.debugf("added task to %s (%d total)", c.page.StorageKey(), len(tasks))
	return Outcome{
		Accepted: true,
		Task:     task,
		Notice:   MsgAdded,
		Values:   url.Values{},
	}, nil
}

// Delete removes the task at index. An index outside the current list is a
// no-op and reports false.
func (c *Controller) Delete(ctx context.Context, index int) (bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	tasks, err := c.load(ctx)
	if err != nil {
		return false, err
	}

	if index < 0 || index >= len(tasks) {
		c.board.debugf("ignored delete of index %d on %s (%d tasks)", index, c.page.StorageKey(), len(tasks))
		return false, nil
	}

	tasks = append(tasks[:index], tasks[index+1:]...)
	if err := c.save(ctx, tasks); err != nil {
		return false, err
	}

	c.board.debugf("deleted index %d from %s", index, c.page.StorageKey())
	return true, nil
}

// Tasks returns the stored list in insertion order.
func (c *Controller) Tasks(ctx context.Context) ([]storage.Task, error) {
	return c.load(ctx)
}

// Rows returns the table rows for the current list. Pages without a table
// get no rows.
func (c *Controller) Rows(ctx context.Context) ([]Row, error) {
	if !c.page.ShowTable() {
		return nil, nil
	}

	tasks, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return RowsOf(tasks), nil
}

// RowsOf numbers tasks by position.
func RowsOf(tasks []storage.Task) []Row {
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{Index: i, Name1: t.Name1, Name2: t.Name2, Date: t.Date}
	}
	return rows
}

func (c *Controller) load(ctx context.Context) ([]storage.Task, error) {
	tasks, err := c.board.backend.Load(ctx, c.page.StorageKey())
	if err != nil {
		c.board.logger.Printf("load %s: %v", c.page.StorageKey(), err)
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

func (c *Controller) save(ctx context.Context, tasks []storage.Task) error {
	if err := c.board.backend.Save(ctx, c.page.StorageKey(), tasks); err != nil {
		c.board.logger.Printf("save %s: %v", c.page.StorageKey(), err)
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
