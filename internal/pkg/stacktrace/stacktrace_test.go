package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/nvago/internal/pkg/goroutine.run.func1()
	/app/internal/pkg/goroutine/goroutine.go:71 +0x3a
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:792 +0x132
github.com/shandysiswandi/nvago/internal/accounts/usecase.(*Usecase).Login(...)
	/app/internal/accounts/usecase/login.go:40
`)

	assert.Equal(t, []string{
		"internal/pkg/goroutine/goroutine.go:71",
		"internal/accounts/usecase/login.go:40",
	}, InternalPaths(stack))

	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/app/main.go:10\n")))
}
