/*
Package dsl provides a fluent builder for dialogue graphs.

It is convenient for tests and for embedding small conversations in Go code:

	b := dsl.New()
	b.Add("inicio").Menu("¿Qué querés hacer?").
		Option("1", "Buscar reserva", "buscar").
		Option("2", "Salir", "fin")
	b.Add("buscar").Input("Escribí el nombre de la reserva").Go("fin")
	b.Add("fin").End("¡Gracias!")

	loader, err := b.Build()
*/
package dsl
