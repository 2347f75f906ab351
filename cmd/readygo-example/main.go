// Command readygo-example measures a handful of standard library operations.
//
//	go run ./cmd/readygo-example --record
//	go run ./cmd/readygo-example --compare
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"readygo/pkg/benchmark"
	"readygo/pkg/ready"
)

var sink string

// mapLookup builds its table in Setup so only the lookup is timed.
type mapLookup struct {
	benchmark.Base
	table map[string]int
	keys  []string
	found int
}

func (m *mapLookup) Name() string { return "Looking up a map key" }

func (m *mapLookup) Setup() error {
	m.table = make(map[string]int, 1024)
	m.keys = make([]string, 0, 1024)
	for i := 0; i < 1024; i++ {
		key := "key-" + strconv.Itoa(i)
		m.table[key] = i
		m.keys = append(m.keys, key)
	}
	return nil
}

func (m *mapLookup) Go() {
	m.found += m.table[m.keys[m.found&1023]] + 1
}

func (m *mapLookup) Cleanup() error {
	m.table, m.keys = nil, nil
	return nil
}

func main() {
	os.Exit(ready.Go(os.Args[1:],
		benchmark.Func("Formatting an integer with fmt", func() {
			sink = fmt.Sprintf("%d", 12345)
		}),
		benchmark.Func("Formatting an integer with strconv", func() {
			sink = strconv.Itoa(12345)
		}),
		benchmark.Func("Building a string", func() {
			var sb strings.Builder
			for i := 0; i < 16; i++ {
				sb.WriteString("ab")
			}
			sink = sb.String()
		}),
		&mapLookup{},
	))
}
