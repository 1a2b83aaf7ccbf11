// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KeyValueStore: Raw persistence of named JSON collections
//   - RecordStore: Typed persistence of documents, presentations and summaries
//   - TextExtractor: Reduces an uploaded file to plain text
//   - ExtractorRegistry: Selects the extractor for a document type
//   - IDGenerator: Assigns record identifiers
//   - ConfigStore: Application configuration
//   - PromptStore: Prompt templates for the AI gateway
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextGenerator: Language model completions. Without it, every AI
//     capability reports a transport failure and falls back where it can.
//   - GatewayMetrics: Counts gateway calls by capability and outcome.
//   - PresentationExporter: Renders presentations to PDF.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or CLI package
package driven
