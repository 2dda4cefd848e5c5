package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// hclFile mirrors Config for HCL files. Every field is optional so that only
// the values present in the file overlay the defaults.
type hclFile struct {
	Version  *string      `hcl:"version,optional"`
	Market   *hclMarket   `hcl:"market,block"`
	Catalog  *hclCatalog  `hcl:"catalog,block"`
	Refining *hclRefining `hcl:"refining,block"`
	Output   *hclOutput   `hcl:"output,block"`
	Logging  *hclLogging  `hcl:"logging,block"`
}

type hclMarket struct {
	BaseURL           *string `hcl:"base_url,optional"`
	TimeoutSeconds    *int    `hcl:"timeout_seconds,optional"`
	RequestsPerMinute *int    `hcl:"requests_per_minute,optional"`
	Quality           *int    `hcl:"quality,optional"`
}

type hclCatalog struct {
	ItemsPath *string `hcl:"items_path,optional"`
}

type hclRefining struct {
	UsageFees map[string]int `hcl:"usage_fees,optional"`
	UseFocus  *bool          `hcl:"use_focus,optional"`
}

type hclOutput struct {
	DefaultFormat *string `hcl:"default_format,optional"`
	MaxTier       *int    `hcl:"max_tier,optional"`
	SortBy        *string `hcl:"sort_by,optional"`
}

type hclLogging struct {
	Level       *string `hcl:"level,optional"`
	Format      *string `hcl:"format,optional"`
	Output      *string `hcl:"output,optional"`
	Development *bool   `hcl:"development,optional"`
}

func decodeHCL(filename string, src []byte, c *Config) error {
	var f hclFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return err
	}

	setString(&c.Version, f.Version)
	if m := f.Market; m != nil {
		setString(&c.Market.BaseURL, m.BaseURL)
		setInt(&c.Market.TimeoutSeconds, m.TimeoutSeconds)
		setInt(&c.Market.RequestsPerMinute, m.RequestsPerMinute)
		setInt(&c.Market.Quality, m.Quality)
	}
	if cat := f.Catalog; cat != nil {
		setString(&c.Catalog.ItemsPath, cat.ItemsPath)
	}
	if r := f.Refining; r != nil {
		for sub, fee := range r.UsageFees {
			c.Refining.UsageFees[sub] = fee
		}
		setBool(&c.Refining.UseFocus, r.UseFocus)
	}
	if o := f.Output; o != nil {
		setString(&c.Output.DefaultFormat, o.DefaultFormat)
		setInt(&c.Output.MaxTier, o.MaxTier)
		setString(&c.Output.SortBy, o.SortBy)
	}
	if l := f.Logging; l != nil {
		setString(&c.Logging.Level, l.Level)
		setString(&c.Logging.Format, l.Format)
		setString(&c.Logging.Output, l.Output)
		setBool(&c.Logging.Development, l.Development)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
