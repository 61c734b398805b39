package common

type Module string

const (
	ModuleRunes Module = "runes"
)

func (m Module) String() string {
	return string(m)
}
