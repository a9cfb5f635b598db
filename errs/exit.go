package errs

import "os"

func defaultExit(code int) { os.Exit(code) }
