// Package jsontree implementa el árbol JSON jerárquico con la semántica de paths de
// Firebase Realtime Database: claves separadas por "/", arrays guardados como hijos con
// clave numérica, nodos vacíos eliminados.
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Split normaliza un path ("/a//b/" -> ["a","b"]). El root es nil.
func Split(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func Join(parts ...string) string {
	return strings.Join(Split(strings.Join(parts, "/")), "/")
}

// Overlaps indica si uno de los paths es ancestro (o igual) del otro.
func Overlaps(a, b string) bool {
	pa, pb := Split(a), Split(b)
	n := len(pa)
	if len(pb) < n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		if pa[i] != pb[i] {
			return false
		}
	}
	return true
}

// Normalize lleva v (cualquier valor serializable) a la forma interna del árbol.
// nil y objetos vacíos devuelven nil.
func Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	var raw []byte
	switch t := v.(type) {
	case json.RawMessage:
		raw = t
	case []byte:
		raw = t
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("jsontree: marshal: %w", err)
		}
		raw = b
	}
	return Decode(raw)
}

// Decode parsea JSON y lo internaliza. Los números quedan como json.Number.
func Decode(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("jsontree: decode: %w", err)
	}
	return internalize(out), nil
}

func internalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if c := internalize(child); c != nil {
				out[k] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make(map[string]any, len(t))
		for i, child := range t {
			if c := internalize(child); c != nil {
				out[strconv.Itoa(i)] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return v
	}
}

// Get devuelve el nodo en parts o nil si no existe. No copia.
func Get(root any, parts []string) any {
	cur := root
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[p]
		if !ok {
			return nil
		}
	}
	return cur
}

// Set escribe val (ya internalizado) en parts y devuelve el nuevo root.
// val == nil elimina el nodo y poda los padres que queden vacíos.
// Un escalar en el camino se reemplaza por un objeto.
func Set(root any, parts []string, val any) any {
	if len(parts) == 0 {
		return val
	}
	m, ok := root.(map[string]any)
	if !ok {
		if val == nil {
			return root
		}
		m = map[string]any{}
	}
	child := Set(m[parts[0]], parts[1:], val)
	if child == nil {
		delete(m, parts[0])
	} else {
		m[parts[0]] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// Render copia el nodo y convierte a array los objetos cuyas claves son exactamente 0..n-1.
func Render(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if arr, ok := asArray(m); ok {
		return arr
	}
	out := make(map[string]any, len(m))
	for k, child := range m {
		out[k] = Render(child)
	}
	return out
}

func asArray(m map[string]any) ([]any, bool) {
	arr := make([]any, len(m))
	for k, child := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(m) || strconv.Itoa(i) != k {
			return nil, false
		}
		arr[i] = Render(child)
	}
	return arr, true
}

// Snapshot serializa el nodo en parts. Nodo inexistente => nil.
func Snapshot(root any, parts []string) (json.RawMessage, error) {
	v := Get(root, parts)
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(Render(v))
	if err != nil {
		return nil, fmt.Errorf("jsontree: marshal snapshot: %w", err)
	}
	return b, nil
}

// Flatten aplana v en hojas escalares keyed por path completo (base + relativo).
func Flatten(base []string, v any) map[string]any {
	out := map[string]any{}
	flattenInto(out, base, v)
	return out
}

func flattenInto(out map[string]any, parts []string, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		if v != nil {
			out[strings.Join(parts, "/")] = v
		}
		return
	}
	for k, child := range m {
		next := make([]string, len(parts)+1)
		copy(next, parts)
		next[len(parts)] = k
		flattenInto(out, next, child)
	}
}

// Assemble reconstruye el subárbol bajo base a partir de hojas keyed por path completo.
// Las hojas fuera de base se ignoran.
func Assemble(base []string, leaves map[string]any) any {
	keys := make([]string, 0, len(leaves))
	for k := range leaves {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var root any
	for _, k := range keys {
		parts := Split(k)
		if len(parts) < len(base) {
			continue
		}
		match := true
		for i := range base {
			if parts[i] != base[i] {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		root = Set(root, parts[len(base):], leaves[k])
	}
	return root
}

// Ancestors devuelve los paths ancestros estrictos de parts ("a/b/c" -> "a", "a/b").
func Ancestors(parts []string) []string {
	out := make([]string, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		out = append(out, strings.Join(parts[:i], "/"))
	}
	return out
}
