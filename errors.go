package bluetooth

// notReadyError marks a startup failure that may clear on retry, such as the
// radio backend refusing to listen while the adapter is still powering on.
// Setup failures stay plain errors: they will not succeed later.
type notReadyError struct {
	err error
}

func (e *notReadyError) Error() string {
	return e.err.Error()
}

// Cause exposes the wrapped error to the errors package cause chain.
func (e *notReadyError) Cause() error {
	return e.err
}

// NotReady marks err as retryable. A nil err stays nil.
func NotReady(err error) error {
	if err == nil {
		return nil
	}
	return &notReadyError{err: err}
}

// IsNotReady reports whether any error in err's cause chain carries the
// NotReady mark.
func IsNotReady(err error) bool {
	type causer interface {
		Cause() error
	}

	for err != nil {
		if _, ok := err.(*notReadyError); ok {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}

	return false
}
