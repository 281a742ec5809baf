package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/velt/spriteset/internal/ctxlog"
)

// fileRoot decodes the top-level blocks of a configuration file.
type fileRoot struct {
	Assets *assetsBlock `hcl:"assets,block"`
	Voices *voicesBlock `hcl:"voices,block"`
	Log    *logBlock    `hcl:"log,block"`
}

type assetsBlock struct {
	// Captured as an expression so the value can be converted through cty
	// with a proper list-of-string constraint instead of relying on the
	// literal's syntactic shape.
	Extensions hcl.Expression `hcl:"extensions,optional"`
}

type voicesBlock struct {
	// Voice names are open-ended, so the block body is decoded as raw
	// attributes rather than a fixed schema.
	Body hcl.Body `hcl:",remain"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Load reads the engine configuration at path, applying defaults for
// anything the file leaves out. An empty path yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading engine configuration.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if root.Assets != nil && root.Assets.Extensions != nil {
		exts, err := stringListValue(root.Assets.Extensions)
		if err != nil {
			return nil, fmt.Errorf("invalid assets.extensions in %s: %w", path, err)
		}
		if exts != nil {
			cfg.Extensions = exts
		}
	}

	if root.Voices != nil {
		voices, err := stringAttributes(root.Voices.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid voices block in %s: %w", path, err)
		}
		cfg.Voices = voices
	}

	if root.Log != nil {
		if root.Log.Level != nil {
			cfg.LogLevel = *root.Log.Level
		}
		if root.Log.Format != nil {
			cfg.LogFormat = *root.Log.Format
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	logger.Debug("Engine configuration loaded.", "extensions", cfg.Extensions, "voices", len(cfg.Voices))
	return cfg, nil
}

// stringListValue evaluates an expression and converts it to []string.
func stringListValue(expr hcl.Expression) ([]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a list of strings: %w", err)
	}
	var out []string
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// stringAttributes decodes every attribute of a body as a string value.
func stringAttributes(body hcl.Body) (map[string]string, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	out := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		val, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: expected a string: %w", name, err)
		}
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}
