package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Load reads a configuration file, picking the loader by extension:
// .cue (or a directory of CUE files), .yaml, .yml or .json.
// The result has been validated; only the first problem is returned.
func Load(path string) (*TableConfig, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, errs[0]
	}
	return cfg, nil
}

// Read is Load without validation, for callers that report every problem.
func Read(path string) (*TableConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config not found: %s", path)}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case info.IsDir():
		return LoadCUEDir(path)
	case ext == ".cue":
		return LoadCUEFile(path)
	case ext == ".yaml" || ext == ".yml" || ext == ".json":
		return LoadYAMLFile(path)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported config extension %q", ext)}
	}
}

// LoadCUEFile compiles one CUE file.
func LoadCUEFile(path string) (*TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return ParseCUE(data, path)
}

// ParseCUE compiles CUE source whose top-level `table` field holds the
// configuration. filename is used for error positions.
func ParseCUE(src []byte, filename string) (*TableConfig, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fromCUE(ErrCodeParseFailed, err)
	}
	return decodeCUE(ctx, v)
}

// LoadCUEDir loads every CUE file of the package in dir, the way
// `cue eval` would.
func LoadCUEDir(dir string) (*TableConfig, error) {
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fromCUE(ErrCodeParseFailed, inst.Err)
	}
	ctx := cuecontext.New()
	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return nil, fromCUE(ErrCodeBuildFailed, err)
	}
	return decodeCUE(ctx, v)
}

func decodeCUE(ctx *cue.Context, v cue.Value) (*TableConfig, error) {
	tableVal := v.LookupPath(cue.ParsePath("table"))
	if !tableVal.Exists() {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no top-level `table` field", Pos: v.Pos()}
	}

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fromCUE(ErrCodeBuildFailed, err)
	}
	unified := schema.LookupPath(cue.ParsePath("#Table")).Unify(tableVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(ErrCodeBuildFailed, err)
	}

	var cfg TableConfig
	if err := unified.Decode(&cfg); err != nil {
		return nil, fromCUE(ErrCodeBuildFailed, err)
	}
	return &cfg, nil
}

// LoadYAMLFile decodes a YAML or JSON file.
func LoadYAMLFile(path string) (*TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseYAML strictly decodes a YAML document; unknown fields are errors.
func ParseYAML(data []byte) (*TableConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg TableConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: "empty document"}
		}
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error()}
	}
	return &cfg, nil
}
