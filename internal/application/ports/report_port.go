package ports

import "io"

// Table datos tabulares listos para escribir en cualquier formato.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// TableWriter escribe una tabla en un formato concreto (csv, xlsx, pdf).
type TableWriter interface {
	Write(w io.Writer, t Table) error
	ContentType() string
	Extension() string
}

// TableReader lee filas de un archivo tabular; la primera fila es la cabecera.
type TableReader interface {
	Read(r io.Reader) ([][]string, error)
}
