// Package pages implements the freeform notes commands.
package pages

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/models"
)

type AddCmd struct {
	Title   string `arg:"" help:"Page title."`
	Content string `short:"c" help:"Page content." default:""`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	page := models.Page{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Content:   c.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ctx.Store.AddPage(page); err != nil {
		return fmt.Errorf("failed to add page: %w", err)
	}

	fmt.Printf("Added page %q (%s)\n", page.Title, page.ID)
	ctx.AutoSnapshot()
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	pages, err := ctx.Store.GetAllPages()
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}
	if len(pages) == 0 {
		fmt.Println("No pages yet.")
		return nil
	}

	for _, page := range pages {
		fmt.Printf("%s  %s  %s\n",
			cli.MutedStyle.Render(page.ID),
			cli.HeaderStyle.Render(page.Title),
			cli.MutedStyle.Render(page.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Page id."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	page, err := ctx.Store.GetPage(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load page %s: %w", c.ID, err)
	}

	fmt.Println(cli.HeaderStyle.Render(page.Title))
	if page.Content != "" {
		fmt.Println(page.Content)
	}
	return nil
}

type EditCmd struct {
	ID      string  `arg:"" help:"Page id."`
	Title   *string `help:"New title."`
	Content *string `help:"New content."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	page, err := ctx.Store.GetPage(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load page %s: %w", c.ID, err)
	}

	updated := false
	if c.Title != nil {
		page.Title = *c.Title
		updated = true
	}
	if c.Content != nil {
		page.Content = *c.Content
		updated = true
	}
	if !updated {
		fmt.Println("No changes specified. Use --title or --content.")
		return nil
	}

	page.UpdatedAt = time.Now()
	if err := ctx.Store.UpdatePage(page); err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	fmt.Printf("Updated page %q\n", page.Title)
	ctx.AutoSnapshot()
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Page id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeletePage(c.ID); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	fmt.Printf("Deleted page %s\n", c.ID)
	ctx.AutoSnapshot()
	return nil
}
