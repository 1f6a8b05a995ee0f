package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
)

// readDiagram loads and validates a diagram file.
func readDiagram(path string) ([]diagram.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "%s does not exist (create it with: isostack new %s)", path, path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	list, err := diagram.Deserialize(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return list, nil
}

// writeDiagram serializes list to path through a temp file so a failed
// write never truncates the previous version.
func writeDiagram(path string, list []diagram.Component) error {
	data, err := diagram.Serialize(list)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "serialize diagram")
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", path)
	}
	return nil
}

// resolveID expands a component reference typed by the user. It accepts a
// full id, an id without the "shape-" prefix, or any unique prefix of either.
func resolveID(list []diagram.Component, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if diagram.Index(list, ref) >= 0 {
		return ref, nil
	}
	bare := strings.TrimPrefix(ref, diagram.IDPrefix)
	var matches []string
	for _, c := range list {
		if strings.HasPrefix(strings.TrimPrefix(c.ID, diagram.IDPrefix), bare) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", errors.New(errors.ErrCodeComponentNotFound, "no component matches %q", ref)
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "%q matches %d components; use more characters", ref, len(matches))
	}
}
