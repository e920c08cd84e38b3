package manifest

import (
	"github.com/hashicorp/hcl/v2"
)

// rootSchema defines the top-level structure of a manifest file, expecting
// one or more 'implementors' blocks.
type rootSchema struct {
	Blocks []*implementorsBlock `hcl:"implementors,block"`
}

// implementorsBlock represents a single 'implementors' block for decoding
// purposes. The label is the crate name; the body is decoded separately so
// impl blocks keep their file order.
type implementorsBlock struct {
	Crate string   `hcl:"crate,label"`
	Body  hcl.Body `hcl:",remain"`
}

// implementorsBodySchema describes the body of an 'implementors' block.
var implementorsBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "trait"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "impl"},
	},
}

// implBodySchema describes the body of an 'impl' block.
var implBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "text", Required: true},
		{Name: "synthetic"},
		{Name: "types", Required: true},
	},
}
