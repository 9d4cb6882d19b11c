// Package content loads vocabulary packs and turns them into items.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abhisek/kartu/internal/item"
)

//go:embed data/default.json
var defaultPack []byte

// ErrInvalidContent is returned when a pack does not match the content format.
var ErrInvalidContent = errors.New("invalid content")

const metaKey = "$meta"

// Module is one named section of a pack, in file order.
type Module struct {
	Name      string
	Category  string
	Jakarta   bool
	Words     int
	Sentences int
}

// Total returns the number of items the module contributes.
func (m Module) Total() int { return m.Words + m.Sentences }

// Pack is a loaded content pack.
type Pack struct {
	Version string
	Modules []Module
	Items   []*item.Item
}

// Default returns the embedded sample pack.
func Default() (*Pack, error) {
	return Load(defaultPack)
}

// LoadFile reads and loads a pack from path.
func LoadFile(path string) (*Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return Load(raw)
}

// Load validates raw and builds the pack.
func Load(raw []byte) (*Pack, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(raw)
	p := &Pack{}

	registers := registerSets(doc)

	doc.ForEach(func(key, mod gjson.Result) bool {
		name := key.String()
		if name == metaKey {
			p.Version = mod.Get("version").String()
			return true
		}
		b := &moduleBuilder{name: name, registers: registers, seen: map[string]bool{}}
		if isSplit(mod) {
			mod.ForEach(func(reg, block gjson.Result) bool {
				b.block(block, item.Register(reg.String()))
				return true
			})
		} else {
			b.block(mod, item.RegisterNeutral)
		}
		p.Items = append(p.Items, b.items...)
		p.Modules = append(p.Modules, Module{
			Name:      name,
			Category:  CategoryOf(name),
			Jakarta:   item.IsJakartaModule(name),
			Words:     b.words,
			Sentences: b.sentences,
		})
		return true
	})
	return p, nil
}

// Module looks up a module by name.
func (p *Pack) Module(name string) (Module, bool) {
	for _, m := range p.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

func isSplit(mod gjson.Result) bool {
	return mod.Get("formal").Exists() || mod.Get("informal").Exists()
}

type entry struct {
	indo string
	eng  string
}

func readEntry(v gjson.Result) entry {
	indo := v.Get("indo")
	if !indo.Exists() {
		indo = v.Get("indonesian")
	}
	eng := v.Get("english")
	if !eng.Exists() {
		eng = v.Get("eng")
	}
	return entry{indo: strings.TrimSpace(indo.String()), eng: strings.TrimSpace(eng.String())}
}

func registerKey(module string, t item.Type, indo string) string {
	return module + "|" + string(t) + "|" + indo
}

// registerSets records which registers each module|type|indo appears under.
func registerSets(doc gjson.Result) map[string]map[string]bool {
	out := map[string]map[string]bool{}
	doc.ForEach(func(key, mod gjson.Result) bool {
		if key.String() == metaKey || !isSplit(mod) {
			return true
		}
		mod.ForEach(func(reg, block gjson.Result) bool {
			for _, t := range []item.Type{item.TypeWord, item.TypeSentence} {
				for _, v := range block.Get(blockField(t)).Array() {
					e := readEntry(v)
					if e.indo == "" {
						continue
					}
					k := registerKey(key.String(), t, e.indo)
					if out[k] == nil {
						out[k] = map[string]bool{}
					}
					out[k][reg.String()] = true
				}
			}
			return true
		})
		return true
	})
	return out
}

func blockField(t item.Type) string {
	if t == item.TypeWord {
		return "words"
	}
	return "sentences"
}

type moduleBuilder struct {
	name      string
	registers map[string]map[string]bool
	seen      map[string]bool
	items     []*item.Item
	words     int
	sentences int
}

func (b *moduleBuilder) block(block gjson.Result, reg item.Register) {
	for _, t := range []item.Type{item.TypeWord, item.TypeSentence} {
		for _, v := range block.Get(blockField(t)).Array() {
			b.add(t, readEntry(v), reg)
		}
	}
}

func (b *moduleBuilder) add(t item.Type, e entry, reg item.Register) {
	if e.indo == "" || e.eng == "" {
		return
	}
	if reg != item.RegisterNeutral && len(b.registers[registerKey(b.name, t, e.indo)]) > 1 {
		reg = item.RegisterNeutral
	}
	it := item.New(t, b.name, reg, e.indo, e.eng)
	if b.seen[it.ID] {
		return
	}
	b.seen[it.ID] = true
	b.items = append(b.items, it)
	if t == item.TypeWord {
		b.words++
	} else {
		b.sentences++
	}
}
