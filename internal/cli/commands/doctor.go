package commands

import "antler/internal/doctor"

// Doctor runs system health checks.
func Doctor(args []string) error {
	verbose := false
	fix := false
	for _, a := range args {
		switch a {
		case "-v", "--verbose":
			verbose = true
		case "--fix":
			fix = true
		}
	}
	doctor.RunDoctorWithOptions(verbose, fix)
	return nil
}
