package types

import (
	"fmt"
	"regexp"
)

type OptionType string

const (
	String OptionType = "string"
	Bool   OptionType = "bool"
	Int    OptionType = "int"
)

type Option struct {
	Name        string
	Short       string
	Description string
	Default     string
	Required    bool
	Type        OptionType
	Value       string
	ValueFormat *regexp.Regexp
	ValueList   []string
	Sensitive   bool
}

func GetOptionByName(name string, options []*Option) *Option {
	for _, option := range options {
		if option.Name == name {
			return option
		}
	}

	return nil
}

// ValidateOptions checks that every required option carries a value and that
// values match the option's ValueFormat / ValueList when one is declared.
func ValidateOptions(options []*Option, declared []*Option) error {
	for _, decl := range declared {
		opt := GetOptionByName(decl.Name, options)
		if opt == nil {
			if decl.Required {
				return fmt.Errorf("missing required option %q", decl.Name)
			}
			continue
		}

		if opt.Required && opt.Value == "" {
			return fmt.Errorf("option %q is required", opt.Name)
		}

		if opt.Value == "" {
			continue
		}

		if opt.ValueFormat != nil && !opt.ValueFormat.MatchString(opt.Value) {
			return fmt.Errorf("option %q has invalid value %q", opt.Name, opt.Value)
		}

		if len(opt.ValueList) > 0 {
			found := false
			for _, allowed := range opt.ValueList {
				if opt.Value == allowed {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("option %q must be one of %v, got %q", opt.Name, opt.ValueList, opt.Value)
			}
		}
	}

	return nil
}

func SetRequired(opt Option, required bool) *Option {
	opt.Required = required
	return &opt
}

func SetDefaultValue(opt Option, value string) *Option {
	opt.Default = value
	if opt.Value == "" {
		opt.Value = value
	}
	return &opt
}

func WithDescription(opt Option, description string) *Option {
	opt.Description = description
	return &opt
}

func WithValue(opt Option, value string) *Option {
	opt.Value = value
	return &opt
}
