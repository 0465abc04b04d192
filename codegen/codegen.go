// Package codegen turns a finished schema.Namespace into the artifacts an
// extension author ships: a self-contained generator script and the
// namespace/extensions YAML files it would write. The script carries a
// signature so the wizard can load it again later.
package codegen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/BrianJOC/ndx-builder/schema"
)

// Signature delimits the encoded namespace embedded in generated scripts.
const Signature = "NDX_BUILDER_SIGNATURE"

var signaturePattern = regexp.MustCompile(Signature + `([A-Za-z0-9+/=]*)` + Signature)

var scriptTemplate = template.Must(template.New("script").Parse(`"""
This file was autogenerated with the NWB extension builder.
It generates the {{.Name}} extension.
"""
import json

from pynwb.spec import (
    NWBAttributeSpec,
    NWBDatasetSpec,
    NWBGroupSpec,
    NWBLinkSpec,
    NWBNamespaceBuilder,
)

ns = json.loads(r"""{{.Namespace}}""")
types = json.loads(r"""{{.Types}}""")
includes = json.loads(r"""{{.Includes}}""")

ns_path = ns["name"] + ".namespace.yaml"
ext_source = ns["name"] + ".extensions.yaml"


def gen_type(kind_and_spec):
    kind, spec = kind_and_spec
    if kind == "GROUP":
        return gen_group_spec(spec)
    return gen_dataset_spec(spec)


def gen_group_spec(spec):
    spec["attributes"] = [NWBAttributeSpec(**a) for a in spec.get("attributes", [])]
    spec["links"] = [NWBLinkSpec(**l) for l in spec.get("links", [])]
    spec["groups"] = [gen_group_spec(g) for g in spec.get("groups", [])]
    spec["datasets"] = [gen_dataset_spec(d) for d in spec.get("datasets", [])]
    return NWBGroupSpec(**spec)


def gen_dataset_spec(spec):
    spec["attributes"] = [NWBAttributeSpec(**a) for a in spec.get("attributes", [])]
    return NWBDatasetSpec(**spec)


builder = NWBNamespaceBuilder(
    doc=ns["doc"],
    name=ns["name"],
    version=ns["version"],
    author=ns["author"],
    contact=ns["contact"],
    full_name=ns.get("full_name"),
)

for inc in includes:
    builder.include_type(inc, namespace="core")

for ty in types:
    builder.add_spec(ext_source, gen_type(ty))

builder.export(ns_path)

"""
The line below lets the extension builder read this file back in.
It has no effect on this script.

{{.Signature}}
"""
`))

type scriptData struct {
	Name      string
	Namespace string
	Types     string
	Includes  string
	Signature string
}

// Script renders the generator script for ns.
func Script(ns schema.Namespace) (string, error) {
	nsJSON, err := json.Marshal(convertNamespace(ns))
	if err != nil {
		return "", fmt.Errorf("marshal namespace: %w", err)
	}
	types := make([]typeSpec, 0, len(ns.Types))
	for _, t := range ns.Types {
		types = append(types, convertTypeDef(t))
	}
	typesJSON, err := json.Marshal(types)
	if err != nil {
		return "", fmt.Errorf("marshal types: %w", err)
	}
	includesJSON, err := json.Marshal(coreIncludes(ns))
	if err != nil {
		return "", fmt.Errorf("marshal includes: %w", err)
	}
	sig, err := Sign(ns)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = scriptTemplate.Execute(&buf, scriptData{
		Name:      ns.Name,
		Namespace: string(nsJSON),
		Types:     string(typesJSON),
		Includes:  string(includesJSON),
		Signature: sig,
	})
	if err != nil {
		return "", fmt.Errorf("render script: %w", err)
	}
	return buf.String(), nil
}

// Sign encodes ns between two Signature markers.
func Sign(ns schema.Namespace) (string, error) {
	raw, err := json.Marshal(ns)
	if err != nil {
		return "", fmt.Errorf("marshal signature: %w", err)
	}
	return Signature + base64.StdEncoding.EncodeToString(raw) + Signature, nil
}

// Recover reads the namespace back out of a script produced by Script.
func Recover(script string) (schema.Namespace, error) {
	m := signaturePattern.FindStringSubmatch(script)
	if m == nil {
		return schema.Namespace{}, ErrNoSignature
	}
	raw, err := base64.StdEncoding.DecodeString(m[1])
	if err != nil {
		return schema.Namespace{}, SignatureError{Err: err}
	}
	var ns schema.Namespace
	if err := json.Unmarshal(raw, &ns); err != nil {
		return schema.Namespace{}, SignatureError{Err: err}
	}
	if err := verify(ns); err != nil {
		return schema.Namespace{}, err
	}
	return ns, nil
}

func verify(ns schema.Namespace) error {
	if strings.TrimSpace(ns.Name) == "" {
		return InvalidNamespaceError{Reason: "missing name"}
	}
	for i, t := range ns.Types {
		switch {
		case t.Kind == schema.KindGroup && t.Group != nil:
			for _, d := range t.Group.Groups {
				if !declared(d.Kind, d.Inc != nil, d.Anonymous != nil) {
					return InvalidNamespaceError{Reason: fmt.Sprintf("type %s declares a group without a matching definition", t.Name())}
				}
			}
			for _, d := range t.Group.Datasets {
				if !declared(d.Kind, d.Inc != nil, d.Anonymous != nil) {
					return InvalidNamespaceError{Reason: fmt.Sprintf("type %s declares a dataset without a matching definition", t.Name())}
				}
			}
		case t.Kind == schema.KindDataset && t.Dataset != nil:
		default:
			return InvalidNamespaceError{Reason: fmt.Sprintf("type %d has kind %q without a matching definition", i, t.Kind)}
		}
	}
	return nil
}

func declared(kind schema.DecKind, inc, anonymous bool) bool {
	return (kind == schema.DecInc && inc) || (kind == schema.DecAnonymous && anonymous)
}

// NamespaceYAML renders the <name>.namespace.yaml document.
func NamespaceYAML(ns schema.Namespace) ([]byte, error) {
	doc := struct {
		Namespaces []namespaceSpec `yaml:"namespaces"`
	}{Namespaces: []namespaceSpec{convertNamespace(ns)}}
	return marshalYAML(doc)
}

// ExtensionsYAML renders the <name>.extensions.yaml document.
func ExtensionsYAML(ns schema.Namespace) ([]byte, error) {
	doc := struct {
		Groups   []*groupSpec   `yaml:"groups,omitempty"`
		Datasets []*datasetSpec `yaml:"datasets,omitempty"`
	}{}
	for _, t := range ns.Types {
		spec := convertTypeDef(t)
		if spec.Group != nil {
			doc.Groups = append(doc.Groups, spec.Group)
			continue
		}
		doc.Datasets = append(doc.Datasets, spec.Dataset)
	}
	return marshalYAML(doc)
}

// Files returns the spec files keyed by file name.
func Files(ns schema.Namespace) (map[string][]byte, error) {
	nsDoc, err := NamespaceYAML(ns)
	if err != nil {
		return nil, err
	}
	extDoc, err := ExtensionsYAML(ns)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		ns.Name + ".namespace.yaml": nsDoc,
		extensionsFile(ns):          extDoc,
	}, nil
}

func marshalYAML(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
