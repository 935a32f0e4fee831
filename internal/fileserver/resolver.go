// Package fileserver реализует разрешение путей внутри served root.
//
// Единственный инвариант, который здесь важен: какой бы путь ни пришёл в
// запросе, разрешённый файл ВСЕГДА остаётся внутри корневой директории.
// Всё остальное (index файлы, листинг директорий) - policy поверх этого.
package fileserver

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	domainerrors "github.com/Haleralex/filebridge/internal/domain/errors"
	"github.com/spf13/afero"
)

// ============================================
// Options
// ============================================

// Options - policy разрешения путей.
type Options struct {
	// IndexFile - имя index файла внутри директорий (e.g., "index.html")
	IndexFile string
	// DirectoryListing - отдавать ли листинг директории без index файла.
	// Если false, директория без index файла отвечает 404.
	DirectoryListing bool
}

// DefaultOptions - policy по умолчанию.
func DefaultOptions() Options {
	return Options{
		IndexFile:        "index.html",
		DirectoryListing: true,
	}
}

// ============================================
// Resolver
// ============================================

// Resolver разрешает пути запросов относительно корневой директории.
//
// Работает поверх afero.Fs: в production это OsFs, в тестах MemMapFs.
type Resolver struct {
	fs   afero.Fs
	root string
	opts Options
}

// NewResolver создаёт Resolver для абсолютного root.
func NewResolver(fs afero.Fs, root string, opts Options) *Resolver {
	if opts.IndexFile == "" {
		opts.IndexFile = DefaultOptions().IndexFile
	}
	return &Resolver{
		fs:   fs,
		root: filepath.Clean(root),
		opts: opts,
	}
}

// Root возвращает корневую директорию.
func (r *Resolver) Root() string {
	return r.root
}

// CheckRoot проверяет, что root существует и является директорией.
// Используется readiness probe.
func (r *Resolver) CheckRoot() error {
	info, err := r.fs.Stat(r.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return domainerrors.NotFound(r.root, os.ErrInvalid)
	}
	return nil
}

// ============================================
// Entry
// ============================================

// Entry - результат успешного разрешения пути.
type Entry struct {
	// Name - имя файла (для content-type по расширению)
	Name string
	// ModTime - время модификации
	ModTime time.Time
	// Size в байтах (0 для листинга)
	Size int64
	// IsDir - true, если это листинг директории
	IsDir bool
	// Children - содержимое директории (только при IsDir)
	Children []DirEntry
	// RedirectTo - канонический URL директории (с trailing slash);
	// непустой, когда директория запрошена без него
	RedirectTo string

	file afero.File
}

// DirEntry - один элемент листинга директории.
type DirEntry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Content возвращает содержимое файла для стриминга.
// Для листингов возвращает nil.
func (e *Entry) Content() io.ReadSeeker {
	if e.file == nil {
		return nil
	}
	return e.file
}

// Close освобождает файловый дескриптор. Безопасен для листингов.
func (e *Entry) Close() error {
	if e.file == nil {
		return nil
	}
	return e.file.Close()
}

// ============================================
// Resolution
// ============================================

// Resolve разрешает путь запроса в Entry.
//
// Порядок проверок:
//  1. Синтаксис пути (NUL байты, пустой путь) -> BadRequest
//  2. Явные ".." сегменты -> Forbidden
//  3. Containment check после Clean+Join -> Forbidden
//  4. Stat: нет файла или нет прав -> NotFound
//  5. Директория без trailing slash -> redirect на канонический URL
//  6. Директория: index файл, иначе листинг или NotFound
//
// Caller обязан вызвать Entry.Close после использования.
func (r *Resolver) Resolve(requestPath string) (*Entry, error) {
	if requestPath == "" || strings.ContainsRune(requestPath, 0) {
		return nil, domainerrors.BadRequest(requestPath, nil)
	}

	// Явная попытка traversal - отвечаем Forbidden до любой нормализации,
	// чтобы "/../../etc/passwd" не превратился тихо в "/etc/passwd".
	for _, segment := range strings.Split(requestPath, "/") {
		if segment == ".." {
			return nil, domainerrors.Forbidden(requestPath)
		}
	}

	cleaned := path.Clean("/" + requestPath)
	full := filepath.Join(r.root, filepath.FromSlash(cleaned))

	// Containment check: после Join результат обязан лежать внутри root.
	rel, err := filepath.Rel(r.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, domainerrors.Forbidden(requestPath)
	}

	info, err := r.fs.Stat(full)
	if err != nil {
		return nil, statError(requestPath, err)
	}

	if info.IsDir() {
		// Директория без trailing slash: канонизируем URL, иначе
		// относительные ссылки на странице резолвятся мимо директории.
		if !strings.HasSuffix(requestPath, "/") {
			return &Entry{
				Name:       filepath.Base(full),
				IsDir:      true,
				RedirectTo: cleaned + "/",
			}, nil
		}
		return r.resolveDir(requestPath, full)
	}

	return r.openFile(requestPath, full, info)
}

// resolveDir обрабатывает директорию: index файл -> файл,
// иначе листинг или NotFound согласно policy.
func (r *Resolver) resolveDir(requestPath, dir string) (*Entry, error) {
	indexPath := filepath.Join(dir, r.opts.IndexFile)
	if info, err := r.fs.Stat(indexPath); err == nil && !info.IsDir() {
		return r.openFile(requestPath, indexPath, info)
	}

	if !r.opts.DirectoryListing {
		return nil, domainerrors.NotFound(requestPath, nil)
	}

	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return nil, domainerrors.Internal(requestPath, err)
	}

	children := make([]DirEntry, 0, len(infos))
	for _, fi := range infos {
		children = append(children, DirEntry{
			Name:  fi.Name(),
			IsDir: fi.IsDir(),
			Size:  fi.Size(),
		})
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})

	return &Entry{
		Name:     filepath.Base(dir),
		ModTime:  time.Now().UTC(),
		IsDir:    true,
		Children: children,
	}, nil
}

// openFile открывает regular file, прошедший stat.
func (r *Resolver) openFile(requestPath, full string, info os.FileInfo) (*Entry, error) {
	f, err := r.fs.Open(full)
	if err != nil {
		// Файл прошёл stat, но открыть не удалось
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil, domainerrors.NotFound(requestPath, err)
		}
		return nil, domainerrors.Internal(requestPath, err)
	}

	return &Entry{
		Name:    info.Name(),
		ModTime: info.ModTime(),
		Size:    info.Size(),
		file:    f,
	}, nil
}

// statError переводит ошибку stat в доменную.
// Нечитаемые и отсутствующие файлы неразличимы для клиента: оба 404.
func statError(requestPath string, err error) error {
	if os.IsNotExist(err) || os.IsPermission(err) {
		return domainerrors.NotFound(requestPath, err)
	}
	return domainerrors.Internal(requestPath, err)
}
