package messaging

import (
	"context"
	"errors"
)

type fanoutPublisher struct {
	publishers []Publisher
}

// NewFanoutPublisher publishes every change to each publisher in turn. A failing
// publisher does not stop delivery to the others.
func NewFanoutPublisher(publishers ...Publisher) Publisher {
	switch len(publishers) {
	case 0:
		return NewNopPublisher()
	case 1:
		return publishers[0]
	}
	return &fanoutPublisher{publishers: publishers}
}

func (f *fanoutPublisher) PublishChange(ctx context.Context, change ProjectionChange) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishChange(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanoutPublisher) Close() {
	for _, p := range f.publishers {
		p.Close()
	}
}
