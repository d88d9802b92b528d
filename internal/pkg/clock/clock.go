package clock

import "time"

// Clock is injected wherever business rules depend on "now".
type Clock interface {
	Now() time.Time
}

type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// System is the wall clock.
var System Clock = Func(time.Now)
