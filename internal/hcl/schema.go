package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Components []*componentBlock `hcl:"component,block"`
	Exports    []*exportBlock    `hcl:"export,block"`
	Imports    []*importBlock    `hcl:"import,block"`
}

type componentBlock struct {
	Name      string          `hcl:"name,label"`
	Kind      string          `hcl:"kind"`
	Lazy      bool            `hcl:"lazy,optional"`
	Arguments *argumentsBlock `hcl:"arguments,block"`
}

type argumentsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type exportBlock struct {
	Ref       string `hcl:"ref,label"`
	Interface string `hcl:"interface"`
	Name      string `hcl:"name,optional"`
	Root      string `hcl:"root,optional"`
}

type importBlock struct {
	Name      string `hcl:"name,label"`
	Interface string `hcl:"interface"`
	Root      string `hcl:"root,optional"`
}
