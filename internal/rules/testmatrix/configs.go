package testmatrix

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Configs is an ordered mapping from configuration name to the extra
// arguments for that configuration. Iteration order is insertion order,
// which makes expansion deterministic; a plain map would not.
type Configs struct {
	names []string
	args  map[string][]string
}

// Set adds a configuration or replaces the arguments of an existing one.
// Replacing keeps the original insertion position.
func (c *Configs) Set(name string, extraArgs ...string) {
	if c.args == nil {
		c.args = make(map[string][]string)
	}
	if _, ok := c.args[name]; !ok {
		c.names = append(c.names, name)
	}
	c.args[name] = extraArgs
}

// Get returns the arguments for name and whether it exists.
func (c *Configs) Get(name string) ([]string, bool) {
	args, ok := c.args[name]
	return args, ok
}

// Len returns the number of configurations.
func (c *Configs) Len() int { return len(c.names) }

// Names returns the configuration names in insertion order.
func (c *Configs) Names() []string { return c.names }

// UnmarshalJSON decodes a JSON object into c, preserving the order of the
// object's keys. encoding/json map decoding would lose it, so the object is
// walked token by token.
func (c *Configs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("configurations: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("configurations: expected string key, got %v", keyTok)
		}
		var extraArgs []string
		if err := dec.Decode(&extraArgs); err != nil {
			return fmt.Errorf("configurations: %s: %w", name, err)
		}
		c.Set(name, extraArgs...)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes c as a JSON object in insertion order.
func (c Configs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.args[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
