package async

import (
	"strings"
	"sync"
)

type Errors struct {
	E []error
}

var _ error = (*Errors)(nil)

func (e Errors) Wrapped() error {
	if len(e.E) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	var sb strings.Builder
	l := len(e.E)
	for i, err := range e.E {
		sb.WriteString(err.Error())
		if i < l-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// Map applies f to every element of src, running at most limit invocations
// at once. Results arrive in completion order. An error from one element
// never cancels the others; all errors are collected and returned together.
func Map[T any, D any](src []T, limit int, f func(T) (D, error)) ([]D, error) {
	if len(src) == 0 {
		return []D{}, nil
	}

	if limit <= 0 {
		limit = len(src)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]D, 0, len(src))
		errs    Errors
	)

	limiter := make(chan struct{}, limit)

	wg.Add(len(src))
	for _, element := range src {
		limiter <- struct{}{}
		go func(el T) {
			defer func() {
				<-limiter
				wg.Done()
			}()

			r, err := f(el)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs.E = append(errs.E, err)
				return
			}
			results = append(results, r)
		}(element)
	}

	wg.Wait()

	return results, errs.Wrapped()
}

// ForEach is Map for side-effecting work without a result.
func ForEach[T any](src []T, limit int, f func(T) error) error {
	_, err := Map(src, limit, func(el T) (struct{}, error) {
		return struct{}{}, f(el)
	})
	return err
}
