package snapshot

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/blobstore"
	"github.com/hupe1980/graphattr/codec"
	"github.com/hupe1980/graphattr/persistence"
	"github.com/hupe1980/graphattr/resource"
)

type options struct {
	compression persistence.Compression
	codec       codec.Codec
	controller  *resource.Controller
	attrOpts    []attribute.Option
	id          uuid.UUID
	now         func() time.Time
}

// Option configures Save and Load.
type Option func(*options)

// WithCompression sets the column compression used by Save.
// Default: zstd.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithCodec sets the manifest codec used by Save. Load always uses the
// codec named in the manifest.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithController bounds concurrency, memory and IO bandwidth.
func WithController(c *resource.Controller) Option {
	return func(o *options) { o.controller = c }
}

// WithAttributeOptions applies column options to every column Load creates.
func WithAttributeOptions(opts ...attribute.Option) Option {
	return func(o *options) { o.attrOpts = opts }
}

// WithID sets the id recorded by Save. Default: a new random id.
func WithID(id uuid.UUID) Option {
	return func(o *options) { o.id = id }
}

func buildOptions(opts []Option) options {
	o := options{
		compression: persistence.CompressionZstd,
		codec:       codec.Default,
		now:         time.Now,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Save writes every attribute of attrs below prefix and commits the
// snapshot by writing its manifest last. The store must not be mutated
// while Save runs.
func Save(ctx context.Context, store blobstore.Store, prefix string, attrs *attribute.Store, opts ...Option) (*Manifest, error) {
	o := buildOptions(opts)
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}

	list := attrs.Attributes()
	m := &Manifest{
		Version:     CurrentVersion,
		ID:          o.id,
		CreatedAt:   o.now().UTC(),
		Codec:       o.codec.Name(),
		Compression: o.compression.String(),
		NextID:      attrs.NextID(),
		Attributes:  make([]Entry, len(list)),
	}

	eg, gctx := errgroup.WithContext(ctx)
	for i, a := range list {
		if err := o.controller.AcquireWorker(gctx); err != nil {
			break
		}
		eg.Go(func() error {
			defer o.controller.ReleaseWorker()

			data, err := persistence.EncodeColumn(a.Description, o.compression)
			if err != nil {
				return fmt.Errorf("encode attribute %q: %w", a.Name, err)
			}
			if err := o.controller.AcquireIO(gctx, len(data)); err != nil {
				return err
			}
			name := blobName(a.ID)
			if err := store.Put(gctx, path.Join(prefix, name), data); err != nil {
				return fmt.Errorf("write attribute %q: %w", a.Name, err)
			}
			m.Attributes[i] = Entry{
				ID:          a.ID,
				ElementType: a.ElementType.String(),
				Name:        a.Name,
				Type:        a.Description.Name(),
				TypeVersion: a.Description.Version(),
				Blob:        name,
				Size:        int64(len(data)),
				Length:      a.Description.Len(),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := encodeManifest(o.codec, m)
	if err != nil {
		return nil, err
	}
	if err := store.Put(ctx, path.Join(prefix, ManifestName), data); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return m, nil
}

// ReadManifest reads and validates the manifest below prefix.
func ReadManifest(ctx context.Context, store blobstore.Store, prefix string) (*Manifest, error) {
	data, err := blobstore.Get(ctx, store, path.Join(prefix, ManifestName))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, prefix)
		}
		return nil, err
	}

	// Both built-in codecs read each other's output; the recorded name
	// selects the implementation.
	var probe struct {
		Codec string `json:"codec"`
	}
	if err := codec.Default.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	c, ok := codec.ByName(probe.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrInvalidManifest, probe.Codec)
	}

	m := new(Manifest)
	if err := c.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load restores the snapshot below prefix into a new attribute store.
// Attribute ids are preserved.
func Load(ctx context.Context, store blobstore.Store, prefix string, opts ...Option) (*attribute.Store, *Manifest, error) {
	o := buildOptions(opts)

	m, err := ReadManifest(ctx, store, prefix)
	if err != nil {
		return nil, nil, err
	}

	cols := make([]attribute.Description, len(m.Attributes))
	eg, gctx := errgroup.WithContext(ctx)
	for i, e := range m.Attributes {
		if err := o.controller.AcquireWorker(gctx); err != nil {
			break
		}
		eg.Go(func() error {
			defer o.controller.ReleaseWorker()

			if err := o.controller.AcquireMemory(gctx, e.Size); err != nil {
				return err
			}
			defer o.controller.ReleaseMemory(e.Size)
			if err := o.controller.AcquireIO(gctx, int(e.Size)); err != nil {
				return err
			}

			data, err := blobstore.Get(gctx, store, path.Join(prefix, e.Blob))
			if err != nil {
				return fmt.Errorf("read attribute %q: %w", e.Name, err)
			}
			d, err := persistence.DecodeColumn(data, o.attrOpts...)
			if err != nil {
				return fmt.Errorf("decode attribute %q: %w", e.Name, err)
			}
			if d.Name() != e.Type {
				return fmt.Errorf("%w: attribute %q is %s, manifest says %s", ErrInvalidManifest, e.Name, d.Name(), e.Type)
			}
			cols[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	attrs := attribute.NewStore(o.attrOpts...)
	for i, e := range m.Attributes {
		et, err := attribute.ParseElementType(e.ElementType)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
		if err := attrs.AttachAt(e.ID, et, e.Name, cols[i]); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
	}
	attrs.Reserve(m.NextID)
	return attrs, m, nil
}

// List returns the prefixes below root that hold a manifest, sorted.
func List(ctx context.Context, store blobstore.Store, root string) ([]string, error) {
	names, err := store.List(ctx, root)
	if err != nil {
		return nil, err
	}
	var prefixes []string
	for _, n := range names {
		if path.Base(n) == ManifestName {
			prefixes = append(prefixes, path.Dir(n))
		}
	}
	sort.Strings(prefixes)
	return prefixes, nil
}

// Delete removes the snapshot below prefix. The manifest goes first so a
// partially deleted snapshot is never loadable.
func Delete(ctx context.Context, store blobstore.Store, prefix string) error {
	m, err := ReadManifest(ctx, store, prefix)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, path.Join(prefix, ManifestName)); err != nil {
		return err
	}
	var errs []error
	for _, e := range m.Attributes {
		if err := store.Delete(ctx, path.Join(prefix, e.Blob)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Prune deletes column blobs below prefix that the manifest does not
// reference, such as leftovers of an interrupted Save.
func Prune(ctx context.Context, store blobstore.Store, prefix string) ([]string, error) {
	m, err := ReadManifest(ctx, store, prefix)
	if err != nil {
		return nil, err
	}
	keep := map[string]bool{ManifestName: true}
	for _, e := range m.Attributes {
		keep[e.Blob] = true
	}

	dir := strings.TrimSuffix(prefix, "/")
	if dir != "" {
		dir += "/"
	}
	names, err := store.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, n := range names {
		rel := strings.TrimPrefix(n, dir)
		if keep[rel] || strings.Contains(rel, "/") {
			continue
		}
		if err := store.Delete(ctx, n); err != nil {
			return removed, err
		}
		removed = append(removed, n)
	}
	return removed, nil
}
