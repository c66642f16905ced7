package config

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// Lua execution limits for report files.
const (
	luaCPULimit    = 10_000_000
	luaMemoryLimit = 50 * 1024 * 1024
)

// LuaParser parses Lua report files. The script sees a global rusage table
// with an empty rusage.config table, an empty rusage.text string and a
// rusage.title(name) function returning a field's title.
type LuaParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaParser creates a LuaParser whose scripts print to stdout. A nil
// stdout discards output.
func NewLuaParser(stdout io.Writer) *LuaParser {
	if stdout == nil {
		stdout = io.Discard
	}
	runtime := rt.New(stdout)
	return &LuaParser{
		runtime: runtime,
		cleanup: lib.LoadAll(runtime),
	}
}

// Parse runs content and extracts rusage.config and rusage.text.
func (p *LuaParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk("report", content, rt.TableValue(p.runtime.GlobalEnv()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua report: %w", err)
	}

	p.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    luaCPULimit,
			Memory: luaMemoryLimit,
		},
	})
	defer p.runtime.PopContext()

	if _, err := rt.Call1(p.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua report: %w", err)
	}
	return p.extract()
}

func (p *LuaParser) initGlobal() {
	table := rt.NewTable()
	table.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	table.Set(rt.StringValue("text"), rt.StringValue(""))

	title := rt.NewGoFunction(luaTitle, "title", 1, false)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, title)
	table.Set(rt.StringValue("title"), rt.FunctionValue(title))

	p.runtime.GlobalEnv().Set(rt.StringValue("rusage"), rt.TableValue(table))
}

// luaTitle implements rusage.title(name).
func luaTitle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	name, err := c.StringArg(0)
	if err != nil {
		return nil, fmt.Errorf("rusage.title: %w", err)
	}
	slot, ok := rusage.SlotByName(name)
	if !ok {
		return c.PushingNext1(t.Runtime, rt.NilValue), nil
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(slot.Title())), nil
}

func (p *LuaParser) extract() (*Config, error) {
	cfg := DefaultConfig()

	val := p.runtime.GlobalEnv().Get(rt.StringValue("rusage"))
	if val == rt.NilValue {
		return &cfg, nil
	}
	table, ok := val.TryTable()
	if !ok {
		return nil, fmt.Errorf("rusage is not a table")
	}

	if configTable, ok := table.Get(rt.StringValue("config")).TryTable(); ok {
		if err := extractConfigTable(&cfg, configTable); err != nil {
			return nil, err
		}
	}
	if text, ok := table.Get(rt.StringValue("text")).TryString(); ok && text != "" {
		cfg.Text = strings.Split(text, "\n")
	}
	return &cfg, nil
}

func extractConfigTable(cfg *Config, table *rt.Table) error {
	if val := getTableString(table, "empty"); val != nil {
		policy, err := rusage.ParseEmptyPolicy(*val)
		if err != nil {
			return fmt.Errorf("invalid empty: %w", err)
		}
		cfg.Empty = policy
	}
	if val := getTableInt(table, "width"); val != nil {
		cfg.Width = *val
	}
	if val := getTableString(table, "separator"); val != nil {
		cfg.Separator = *val
	}
	if val := getTableString(table, "section"); val != nil {
		sec, err := ParseSection(*val)
		if err != nil {
			return fmt.Errorf("invalid section: %w", err)
		}
		cfg.Section = sec
	}
	if val := getTableBool(table, "children"); val != nil {
		cfg.Children = *val
	}
	if val := getTableBool(table, "table"); val != nil {
		cfg.Table = *val
	}
	if pids, err := getTableIntList(table, "pids"); err != nil {
		return fmt.Errorf("invalid pids: %w", err)
	} else if pids != nil {
		cfg.PIDs = pids
	}
	return nil
}

// Close releases the Lua runtime.
func (p *LuaParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool returns nil when key is missing or not a boolean. The
// strings "yes", "true", "on" and "1" count as true.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if b, ok := val.TryBool(); ok {
		return &b
	}
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}
	return nil
}

func getTableString(table *rt.Table, key string) *string {
	if s, ok := table.Get(rt.StringValue(key)).TryString(); ok {
		return &s
	}
	return nil
}

// getTableInt truncates floats.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}
	return nil
}

// getTableIntList reads the array part of table[key]. A single number is
// accepted as a one-element list.
func getTableIntList(table *rt.Table, key string) ([]int, error) {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil, nil
	}
	if n, ok := val.TryInt(); ok {
		return []int{int(n)}, nil
	}
	list, ok := val.TryTable()
	if !ok {
		return nil, fmt.Errorf("%s is not a list", key)
	}
	out := []int{}
	for i := int64(1); ; i++ {
		item := list.Get(rt.IntValue(i))
		if item == rt.NilValue {
			break
		}
		n, ok := item.TryInt()
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not an integer", key, i)
		}
		out = append(out, int(n))
	}
	return out, nil
}
