// Command invctl administra el inventario sin pasar por la API: cuentas, historial,
// migración entre backends y carga de datos iniciales.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newApp(os.Stdout)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
