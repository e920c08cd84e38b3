package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/traitdexgo/internal/catalog"
	"github.com/vk/traitdexgo/internal/ctxlog"
)

// CrateManifest is the format-agnostic representation of one crate's
// 'implementors' block.
type CrateManifest struct {
	Crate string
	Trait string
	Impls []catalog.Implementor
}

// ParseFile reads and decodes one manifest file.
func ParseFile(ctx context.Context, path string) ([]*CrateManifest, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest file %s: %w", path, diags)
	}
	manifests, diags := parseManifestFile(ctx, hclFile, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest file %s: %w", path, diags)
	}
	return manifests, nil
}

// LoadFile reads one manifest file into a catalog, with crates and impls in
// file order.
func LoadFile(ctx context.Context, path string) (*catalog.Catalog, error) {
	manifests, err := ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return Catalog(manifests), nil
}

// Catalog aggregates parsed manifests into a catalog in the given order.
// Duplicate crates follow the catalog's last-writer-wins rule.
func Catalog(manifests []*CrateManifest) *catalog.Catalog {
	cat := catalog.New()
	for _, m := range manifests {
		cat.Set(m.Crate, m.Impls)
	}
	return cat
}

// parseManifestFile decodes an HCL file that contains one or more
// 'implementors' blocks.
func parseManifestFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*CrateManifest, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing implementor manifests from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	schema := &rootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	manifests := make([]*CrateManifest, 0, len(schema.Blocks))
	for _, block := range schema.Blocks {
		bodyContent, contentDiags := block.Body.Content(implementorsBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue // Skip this block but keep decoding the others.
		}

		m := &CrateManifest{Crate: block.Crate}

		if attr, exists := bodyContent.Attributes["trait"]; exists {
			attrDiags := decodeAttribute(attr, cty.String, &m.Trait)
			allDiags = append(allDiags, attrDiags...)
		}

		for _, implBlock := range bodyContent.Blocks {
			im, implDiags := parseImplBlock(implBlock)
			allDiags = append(allDiags, implDiags...)
			if implDiags.HasErrors() {
				continue
			}
			m.Impls = append(m.Impls, im)
		}

		manifests = append(manifests, m)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Successfully parsed implementor manifests", "count", len(manifests))
	return manifests, nil
}

// parseImplBlock decodes one 'impl' block into an implementor.
func parseImplBlock(block *hcl.Block) (catalog.Implementor, hcl.Diagnostics) {
	var im catalog.Implementor
	content, diags := block.Body.Content(implBodySchema)
	if diags.HasErrors() {
		return im, diags
	}

	if attr, exists := content.Attributes["text"]; exists {
		diags = append(diags, decodeAttribute(attr, cty.String, &im.Text)...)
	}
	if attr, exists := content.Attributes["synthetic"]; exists {
		diags = append(diags, decodeAttribute(attr, cty.Bool, &im.Synthetic)...)
	}
	if attr, exists := content.Attributes["types"]; exists {
		diags = append(diags, decodeAttribute(attr, cty.List(cty.String), &im.TypePath)...)
	}

	if !diags.HasErrors() && len(im.TypePath) == 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty types list",
			Detail:   "Every impl block must name the implementing type's full path.",
			Subject:  &block.DefRange,
		})
	}
	return im, diags
}

// decodeAttribute evaluates a literal attribute, converts it to the wanted
// cty type, and binds it onto a Go value.
func decodeAttribute(attr *hcl.Attribute, want cty.Type, target any) hcl.Diagnostics {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}

	converted, err := convert.Convert(val, want)
	if err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid value for %q", attr.Name),
			Detail:   err.Error(),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}

	if err := gocty.FromCtyValue(converted, target); err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Failed to decode %q", attr.Name),
			Detail:   err.Error(),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return nil
}
