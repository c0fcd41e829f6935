package openai

import "fmt"

// reportSystemPrompt instructs the generation model to correct ASR errors
// with domain knowledge and to emit only the filled report body.
const reportSystemPrompt = `You are an expert radiologist assistant. Your task is to extract information from the provided radiology transcript and fill out the provided report template.

IMPORTANT INSTRUCTIONS:
1. The transcript comes from an automatic speech recognition (ASR) system and MAY CONTAIN ERRORS.
2. You must use your medical knowledge to INFER and CORRECT these errors.
3. Maintain the professional medical tone of the report.
4. Output ONLY the filled report content.`

// reportTemperature keeps generation low-variance; reproducibility across
// runs on the same input is a design goal, not a guarantee.
const reportTemperature = 0.2

func buildReportUserPrompt(template, transcript string) string {
	return fmt.Sprintf("TEMPLATE:\n%s\n\nTRANSCRIPT:\n%s\n\nFILLED REPORT:", template, transcript)
}
