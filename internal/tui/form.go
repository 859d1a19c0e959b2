package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/directory"
)

const (
	fieldName = iota
	fieldAge
	fieldSex
	fieldPhone
	fieldAddress
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Age", "Sex", "Phone", "Address"}

var (
	errEmptyField = errors.New("field cannot be empty")
	errAgeNotInt  = errors.New("age must be a whole number")
)

// form is the record entry flow as five inputs filled in order.
type form struct {
	fields [fieldCount]textinput.Model
	focus  int
	err    error
}

func newForm() form {
	var f form
	for i := range f.fields {
		ti := textinput.New()
		ti.Prompt = ""
		f.fields[i] = ti
	}
	f.fields[fieldSex].Placeholder = "1: Male, 2: Female"
	f.fields[fieldName].Focus()
	return f
}

// advance validates the focused field. It moves focus to the next field and
// reports done once the last field is valid.
func (f *form) advance() (done bool) {
	if err := f.validate(f.focus); err != nil {
		f.err = err
		return false
	}
	f.err = nil
	if f.focus == fieldCount-1 {
		return true
	}
	f.fields[f.focus].Blur()
	f.focus++
	f.fields[f.focus].Focus()
	return false
}

func (f *form) validate(i int) error {
	v := strings.TrimSpace(f.fields[i].Value())
	if v == "" {
		return errEmptyField
	}
	switch i {
	case fieldAge:
		if _, err := strconv.Atoi(v); err != nil {
			return errAgeNotInt
		}
	case fieldSex:
		if _, err := contact.ParseSex(v); err != nil {
			return err
		}
	}
	return nil
}

// contact builds the record. Callers only use it after advance reports done,
// so every field has passed validation.
func (f *form) contact() contact.Contact {
	val := func(i int) string { return strings.TrimSpace(f.fields[i].Value()) }
	age, _ := strconv.Atoi(val(fieldAge))
	sex, _ := contact.ParseSex(val(fieldSex))
	return contact.Contact{
		Name:    val(fieldName),
		Age:     age,
		Sex:     sex,
		Phone:   val(fieldPhone),
		Address: val(fieldAddress),
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

func (f *form) view(st styles) string {
	var b strings.Builder
	for i, ti := range f.fields {
		label := st.label
		if i == f.focus {
			label = st.focusedLabel
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(ti.View())
		b.WriteString("\n")
	}
	if f.err != nil {
		msg := f.err.Error()
		if errors.Is(f.err, contact.ErrInvalidSexCode) {
			msg = directory.Describe(f.err)
		}
		b.WriteString("\n" + st.err.Render(msg) + "\n")
	}
	return b.String()
}
