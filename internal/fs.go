package internal

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davidmdm/x/xerr"
)

func WriteYAML(filename string, value any) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	return encoder.Encode(value)
}

func ReadYAML(filename string, value any) (err error) {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = xerr.MultiErrFrom("", err, file.Close())
	}()

	return yaml.NewDecoder(file).Decode(value)
}

// MoveFile renames src onto dst, replacing dst if present. Rename fails with
// a LinkError across filesystems; in that case fall back to copy+delete with
// the same net effect.
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if _, ok := err.(*os.LinkError); !ok {
		return err
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func CopyFile(src, dst string) (err error) {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		err = xerr.MultiErrFrom("", err, source.Close())
	}()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = xerr.MultiErrFrom("", err, destination.Close())
	}()

	_, err = io.Copy(destination, source)
	return err
}
