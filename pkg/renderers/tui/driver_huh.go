package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
)

// HuhDriver prompts with github.com/charmbracelet/huh, one single-field form
// per prompt.
type HuhDriver struct {
	out io.Writer
}

// NewHuhDriver returns a huh-backed driver printing info lines to out
// (stdout when nil).
func NewHuhDriver(out io.Writer) *HuhDriver {
	if out == nil {
		out = os.Stdout
	}
	return &HuhDriver{out: out}
}

func (d *HuhDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	value := cfg.Default
	field := huh.NewInput().
		Title(cfg.Message).
		Description(cfg.Help).
		Value(&value)
	if cfg.Validator != nil {
		field = field.Validate(cfg.Validator)
	}
	if err := d.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

func (d *HuhDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	value := cfg.Default
	field := huh.NewConfirm().
		Title(cfg.Message).
		Description(cfg.Help).
		Value(&value)
	if err := d.run(ctx, field); err != nil {
		return false, err
	}
	return value, nil
}

func (d *HuhDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	options := make([]huh.Option[int], len(cfg.Options))
	for i, label := range cfg.Options {
		options[i] = huh.NewOption(label, i)
	}

	value := cfg.DefaultIndex
	field := huh.NewSelect[int]().
		Title(cfg.Message).
		Description(cfg.Help).
		Options(options...).
		Value(&value)
	if cfg.PageSize > 0 {
		field = field.Height(cfg.PageSize + 2)
	}
	if err := d.run(ctx, field); err != nil {
		return 0, err
	}
	return value, nil
}

func (d *HuhDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	value := cfg.Default
	field := huh.NewText().
		Title(cfg.Message).
		Description(cfg.Help).
		Value(&value)
	if cfg.Validator != nil {
		field = field.Validate(cfg.Validator)
	}
	if err := d.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

func (d *HuhDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func (d *HuhDriver) run(ctx context.Context, field huh.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	form := huh.NewForm(huh.NewGroup(field)).WithTheme(huh.ThemeCatppuccin())
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
