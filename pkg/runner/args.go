package runner

// TidyArgs builds clang-tidy arguments.
//
//	clang-tidy -p <database dir> [--checks=<checks>] [--fix] [extra args...] <file>
type TidyArgs struct {
	DatabaseDir string
	Checks      string
	Fix         bool
	ExtraArgs   []string
}

func (a *TidyArgs) Args(file string) []string {
	args := []string{"-p", a.DatabaseDir}
	if a.Checks != "" {
		args = append(args, "--checks="+a.Checks)
	}
	if a.Fix {
		args = append(args, "--fix")
	}
	args = append(args, a.ExtraArgs...)
	return append(args, file)
}

// FormatArgs builds clang-format arguments.
// In check mode the file is left untouched and violations are reported as errors.
//
//	clang-format --style=<style> --dry-run --Werror <file>
//	clang-format --style=<style> -i <file>
type FormatArgs struct {
	Style string
	Fix   bool
}

func (a *FormatArgs) Args(file string) []string {
	args := []string{"--style=" + a.Style}
	if a.Fix {
		args = append(args, "-i")
	} else {
		args = append(args, "--dry-run", "--Werror")
	}
	return append(args, file)
}
