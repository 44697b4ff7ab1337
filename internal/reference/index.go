package reference

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/aria-lang/nanook-go/internal/stats"
)

// WriteSizes writes a sizes table for the sequences of a FASTA stream. The
// display name of each reference is its id. It returns the number of
// sequences written.
func WriteSizes(fasta io.Reader, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	err := stats.GatherFasta(fasta, func(id string, length int) error {
		n++
		_, err := fmt.Fprintf(bw, "%s\t%d\t%s\n", id, length, id)
		return err
	})
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// IndexFasta writes path.sizes for the FASTA file at path and returns the
// name of the sizes file.
func IndexFasta(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	sizesPath := path + ".sizes"
	out, err := os.Create(sizesPath)
	if err != nil {
		return "", err
	}
	if _, err := WriteSizes(in, out); err != nil {
		out.Close()
		return "", fmt.Errorf("indexing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return sizesPath, nil
}
