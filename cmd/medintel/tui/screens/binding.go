package screens

import (
	"slices"
	"strconv"
	"strings"

	"github.com/mrsinham/medintel/internal/form"
	"github.com/mrsinham/medintel/internal/wizards"
)

// binding holds the variables huh fields edit and copies them back into the
// wizard's form data.
type binding struct {
	strs  map[string]*string
	nums  map[string]*string
	codes map[string]*string
	bools map[string]*bool
	lists map[string]*selection
	times []*string
}

// selection backs a multi-select field. huh reports the chosen options in
// option order, so every item that enters or leaves the selection is recorded
// and replayed as a toggle on commit.
type selection struct {
	current []string
	toggled []string
}

func (s *selection) Get() []string { return s.current }

func (s *selection) Set(v []string) {
	for _, item := range s.current {
		if !slices.Contains(v, item) {
			s.toggled = append(s.toggled, item)
		}
	}
	for _, item := range v {
		if !slices.Contains(s.current, item) {
			s.toggled = append(s.toggled, item)
		}
	}
	s.current = slices.Clone(v)
}

func newBinding() *binding {
	return &binding{
		strs:  make(map[string]*string),
		nums:  make(map[string]*string),
		codes: make(map[string]*string),
		bools: make(map[string]*bool),
		lists: make(map[string]*selection),
	}
}

func (b *binding) str(d *form.Data, key string) *string {
	v := d.String(key)
	b.strs[key] = &v
	return &v
}

// num binds an integer field edited as text. Zero shows as empty.
func (b *binding) num(d *form.Data, key string) *string {
	v := ""
	if n := d.Int(key); n != 0 {
		v = strconv.Itoa(n)
	}
	b.nums[key] = &v
	return &v
}

// code binds a verification code. Only its digits are kept on commit.
func (b *binding) code(d *form.Data, key string) *string {
	v := d.String(key)
	b.codes[key] = &v
	return &v
}

func (b *binding) flag(d *form.Data, key string) *bool {
	v := d.Bool(key)
	b.bools[key] = &v
	return &v
}

func (b *binding) list(d *form.Data, key string) *selection {
	sel := &selection{current: d.Strings(key)}
	b.lists[key] = sel
	return sel
}

// reminders binds each reminder time to its own input.
func (b *binding) reminders(d *form.Data) []*string {
	b.times = nil
	for _, t := range d.Strings(wizards.FieldMedTimes) {
		v := t
		b.times = append(b.times, &v)
	}
	return b.times
}

// commit writes every bound value into d.
func (b *binding) commit(d *form.Data) {
	for k, v := range b.strs {
		d.Set(k, *v)
	}
	for k, v := range b.nums {
		n, err := strconv.Atoi(strings.TrimSpace(*v))
		if err != nil {
			n = 0
		}
		d.Set(k, n)
	}
	for k, v := range b.codes {
		d.Set(k, wizards.SanitizeOTP(*v))
	}
	for k, v := range b.bools {
		d.Set(k, *v)
	}
	for k, sel := range b.lists {
		for _, item := range sel.toggled {
			d.Toggle(k, item)
		}
		sel.toggled = nil
	}
	for i, v := range b.times {
		_ = wizards.SetReminder(d, i, strings.TrimSpace(*v))
	}
}
