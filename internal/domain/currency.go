package domain

import "slices"

// Currency is a configured currency: its ISO code, the description the
// Treasury API uses for it and the colour charts draw it with.
type Currency struct {
	Code  string
	Name  string
	Color string
}

// CurrencySet is the ordered set of currencies under analysis.
type CurrencySet struct {
	ordered []Currency
	byCode  map[string]Currency
	byName  map[string]Currency
}

func NewCurrencySet(currencies []Currency) CurrencySet {
	s := CurrencySet{
		ordered: slices.Clone(currencies),
		byCode:  make(map[string]Currency, len(currencies)),
		byName:  make(map[string]Currency, len(currencies)),
	}
	for _, c := range currencies {
		s.byCode[c.Code] = c
		s.byName[c.Name] = c
	}
	return s
}

func (s CurrencySet) Codes() []string {
	codes := make([]string, 0, len(s.ordered))
	for _, c := range s.ordered {
		codes = append(codes, c.Code)
	}
	return codes
}

func (s CurrencySet) ByCode(code string) (Currency, bool) {
	c, ok := s.byCode[code]
	return c, ok
}

func (s CurrencySet) ByName(name string) (Currency, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Colors maps currency codes to chart colours.
func (s CurrencySet) Colors() map[string]string {
	m := make(map[string]string, len(s.ordered))
	for _, c := range s.ordered {
		m[c.Code] = c.Color
	}
	return m
}

func (s CurrencySet) All() []Currency {
	return slices.Clone(s.ordered)
}
