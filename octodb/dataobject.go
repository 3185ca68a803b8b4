package octodb

import (
	"fmt"

	"github.com/samber/mo"
)

// Materializer turns a raw row into a domain object bound to a collection.
// Implementations must not perform I/O; a Result calls Materialize on every
// Current and never keeps the object around.
type Materializer[T any] interface {
	Materialize(d *Device, collection string, row Row) (T, error)
}

// MaterializerFunc adapts a plain function to Materializer.
type MaterializerFunc[T any] func(d *Device, collection string, row Row) (T, error)

func (fn MaterializerFunc[T]) Materialize(d *Device, collection string, row Row) (T, error) {
	return fn(d, collection, row)
}

// DataObjects is the default materializer, building a *DataObject per row.
func DataObjects() Materializer[*DataObject] {
	return MaterializerFunc[*DataObject](func(d *Device, collection string, row Row) (*DataObject, error) {
		return NewDataObject(d, collection, row), nil
	})
}

// DataObject is a row bound to the collection and device it came from.
type DataObject struct {
	device     *Device
	collection string
	row        Row
}

// NewDataObject keeps its own copy of row.
func NewDataObject(d *Device, collection string, row Row) *DataObject {
	return &DataObject{
		device:     d,
		collection: collection,
		row:        row.Clone(),
	}
}

func (o *DataObject) Device() *Device {
	return o.device
}

func (o *DataObject) Collection() string {
	return o.collection
}

// Row returns a copy of the backing row.
func (o *DataObject) Row() Row {
	return o.row.Clone()
}

func (o *DataObject) Get(column string) mo.Option[any] {
	return o.row.Get(column)
}

func (o *DataObject) Len() int {
	return o.row.Len()
}

func (o *DataObject) String() string {
	return fmt.Sprintf("%s%s", o.collection, o.row)
}
