package commands

import (
	"context"
	"fmt"

	"photonotes/internal/application"
	"photonotes/internal/domain"
)

// ViewResult contains the gallery view after applying the requested
// filter and order
type ViewResult struct {
	View      *domain.ViewIndex
	Timeline  []domain.TimePoint
	Models    []string
	Selection *domain.Resolution // set when a month was requested
	Message   string
}

// ViewCommand applies a filter and sort order to a gallery and optionally
// resolves one month of the resulting view
type ViewCommand struct {
	gallery   *application.Gallery
	Filter    domain.FilterSpec
	Direction domain.SortDirection
	Month     string
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(gallery *application.Gallery, filter domain.FilterSpec, direction domain.SortDirection, month string) *ViewCommand {
	return &ViewCommand{
		gallery:   gallery,
		Filter:    filter,
		Direction: direction,
		Month:     month,
	}
}

// Validate checks if the view operation is valid
func (c *ViewCommand) Validate() error {
	if c.Month != "" {
		if _, err := application.ValidateMonth(c.Month); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the view command
func (c *ViewCommand) Execute(ctx context.Context) (*ViewResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.gallery.SetFilter(c.Filter)
	v := c.gallery.SetDirection(c.Direction)

	result := &ViewResult{
		View:     v,
		Timeline: domain.Timeline(v),
		Models:   c.gallery.Models(),
		Message:  fmt.Sprintf("%d images in %d months", v.Len(), len(v.Buckets)),
	}

	if c.Month != "" {
		key, _ := application.ValidateMonth(c.Month)
		res := domain.Resolve(v, key)
		result.Selection = &res
		result.Message = fmt.Sprintf("%d images in %s", len(res.Matching), key.Label())
	}

	return result, nil
}
