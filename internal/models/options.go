package models

// Rename modes select which track field names the downloaded file.
const (
	RenameMX  = "mx"
	RenameGbx = "gbx"
)

// NoLimit means every matching track is listed and downloaded.
const NoLimit = -1

// RunOptions are the local options extracted from the command line.
type RunOptions struct {
	Path    string
	NewName string
	Limit   int
}

func DefaultRunOptions() RunOptions {
	return RunOptions{
		Path:    "./",
		NewName: RenameGbx,
		Limit:   NoLimit,
	}
}

// Limited reports whether a positive cap applies.
func (o RunOptions) Limited() bool {
	return o.Limit > 0
}
