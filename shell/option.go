package shell

import (
	"fmt"
	"strconv"
)

// Option is a UCI-settable engine parameter. UciString renders the
// "option name ..." line advertised in reply to the uci command.
type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

// BoolOption is a check option bound to an engine flag, such as OwnBook.
type BoolOption struct {
	Name  string
	Value *bool
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type check default %v",
		opt.Name, *opt.Value)
}

// Set accepts the literal "true"/"false" the protocol sends for check
// options, nothing looser.
func (opt *BoolOption) Set(s string) error {
	switch s {
	case "true":
		*opt.Value = true
	case "false":
		*opt.Value = false
	default:
		return fmt.Errorf("invalid check value %q", s)
	}
	return nil
}

// IntOption is a spin option restricted to [Min, Max].
type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type spin default %v min %v max %v",
		opt.Name, *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	var v, err = strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return fmt.Errorf("%v out of range [%v, %v]", v, opt.Min, opt.Max)
	}
	*opt.Value = v
	return nil
}
