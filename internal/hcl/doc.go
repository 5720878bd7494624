// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses trigger and effect descriptor catalogs and turns each
// component block into a capability spec whose configuration is a cty object.
package hcl
