package meta

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/arthur-debert/tabexport/pkg/errors"
)

// Struct tag names read by ParseField.
const (
	TagExport      = "export"
	TagExportProps = "exportprops"
	TagExportSet   = "exportset"
)

// ParseField parses the export tags of a struct field.
func ParseField(tag reflect.StructTag) (*Field, error) {
	f := &Field{}

	single, hasSingle := tag.Lookup(TagExport)
	props, hasProps := tag.Lookup(TagExportProps)
	set, hasSet := tag.Lookup(TagExportSet)

	if hasSingle && strings.TrimSpace(single) == "-" {
		if hasProps || hasSet {
			return nil, errors.New(errors.ErrTagInvalid, "unexportable field cannot declare export properties").
				WithDetail("tag", string(tag))
		}
		f.Unexportable = true
		return f, nil
	}

	if hasSingle {
		p, err := parseProperty(single)
		if err != nil {
			return nil, err
		}
		f.Single = &p
	}

	if hasSet && !hasProps {
		return nil, errors.Newf(errors.ErrTagInvalid, "%s requires %s", TagExportSet, TagExportProps).
			WithDetail("tag", string(tag))
	}

	if hasProps {
		f.Set = &PropertySet{}
		for _, entry := range strings.Split(props, ";") {
			if strings.TrimSpace(entry) == "" {
				continue
			}
			p, err := parseProperty(entry)
			if err != nil {
				return nil, err
			}
			f.Set.Properties = append(f.Set.Properties, p)
		}
		if len(f.Set.Properties) == 0 {
			return nil, errors.Newf(errors.ErrTagInvalid, "%s declares no properties", TagExportProps).
				WithDetail("tag", string(tag))
		}
		if hasSet {
			if err := parseSet(set, f.Set); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// parseProperty parses "name,key=value,...".
func parseProperty(s string) (Property, error) {
	parts := strings.Split(s, ",")
	p := Property{Name: strings.TrimSpace(parts[0])}
	if strings.Contains(p.Name, "=") {
		return Property{}, errors.Newf(errors.ErrTagInvalid, "property name %q looks like an option", p.Name)
	}
	for _, opt := range parts[1:] {
		key, value, err := splitOption(opt)
		if err != nil {
			return Property{}, err
		}
		switch key {
		case "position", "pos":
			pos, err := parsePosition(value)
			if err != nil {
				return Property{}, err
			}
			p.Position = &pos
		case "prefix":
			p.PrefixKey = value
		case "label":
			p.LabelKey = value
		case "format":
			p.Format = value
		default:
			return Property{}, errors.Newf(errors.ErrTagInvalid, "unknown property option %q", key)
		}
	}
	return p, nil
}

func parseSet(s string, set *PropertySet) error {
	for _, opt := range strings.Split(s, ",") {
		if strings.TrimSpace(opt) == "" {
			continue
		}
		key, value, err := splitOption(opt)
		if err != nil {
			return err
		}
		switch key {
		case "position", "pos":
			pos, err := parsePosition(value)
			if err != nil {
				return err
			}
			set.Position = &pos
		case "label":
			set.LabelKey = value
		default:
			return errors.Newf(errors.ErrTagInvalid, "unknown %s option %q", TagExportSet, key)
		}
	}
	return nil
}

func splitOption(opt string) (string, string, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(opt), "=")
	if !ok || key == "" {
		return "", "", errors.Newf(errors.ErrTagInvalid, "malformed option %q, want key=value", opt)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}

func parsePosition(value string) (int, error) {
	pos, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrTagInvalid, "position %q is not an integer", value)
	}
	return pos, nil
}
