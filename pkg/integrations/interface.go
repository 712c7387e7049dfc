package integrations

import "github.com/kerbaras/qari/pkg/data"

// Builder binds chapter texts into a book file.
type Builder interface {
	Add(chapter data.Chapter, text string)
	Len() int
	CreateEPub(title string) (string, error)
}
