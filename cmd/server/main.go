package main

func main() {
	NewServer().Run()
}
