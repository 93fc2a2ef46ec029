package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var registry = map[string]Formatter{}

var aliases = map[string]string{
	"text":  "console",
	"table": "console",
}

func register(f Formatter) {
	registry[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(JSONFormatter{Pretty: true})
	register(CSVFormatter{})
}

// GetFormatterByName returns the formatter registered under name or alias, nil
// when unknown
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(name)
	if target, ok := aliases[name]; ok {
		name = target
	}
	if f, ok := registry[name]; ok {
		return f
	}
	return nil
}

// AvailableFormatterNames lists formatter names and aliases, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry)+len(aliases))
	for n := range registry {
		names = append(names, n)
	}
	for a := range aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// Write formats report with the named formatter into w
func Write(w io.Writer, name string, report *Report) error {
	f := GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
