// Package ops archives and restores the files a game is made of.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BackupFiles writes the given files into a tar.gz, each under its base
// name. Missing files are skipped and reported back; a save that does not
// exist yet is not an error.
func BackupFiles(paths []string, archivePath string) ([]string, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if len(paths) == 0 || archivePath == "" || archivePath == "." {
		return nil, fmt.Errorf("paths and archivePath are required")
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return nil, err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	seen := map[string]string{}
	var skipped []string
	for _, p := range paths {
		name := filepath.Base(p)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s and %s share the archive name %q", prev, p, name)
		}
		ok, err := addFile(tw, p, name)
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", p, err)
		}
		if !ok {
			skipped = append(skipped, p)
			continue
		}
		seen[name] = p
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return skipped, f.Close()
}

func addFile(tw *tar.Writer, path, name string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("not a regular file")
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return false, err
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return false, err
	}

	src, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer src.Close()

	_, err = io.Copy(tw, src)
	return err == nil, err
}

// RestoreFiles extracts an archive made by BackupFiles into targetDir and
// returns the restored paths.
func RestoreFiles(archivePath, targetDir string) ([]string, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return nil, fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var restored []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return restored, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		rel, err := sanitizeArchiveRelPath(hdr.Name)
		if err != nil {
			return restored, err
		}
		outPath := filepath.Join(targetDir, rel)

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return restored, err
		}
		dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode).Perm())
		if err != nil {
			return restored, err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return restored, err
		}
		if err := dst.Close(); err != nil {
			return restored, err
		}
		restored = append(restored, outPath)
	}

	return restored, nil
}

func sanitizeArchiveRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid absolute archive entry path: %s", name)
	}
	if strings.HasPrefix(name, ".."+string(filepath.Separator)) || name == ".." {
		return "", fmt.Errorf("invalid archive entry path traversal: %s", name)
	}
	return name, nil
}
